// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"go.fabprov.dev/internal/config/provisioner"
	"go.fabprov.dev/internal/mocks/mockcredstore"
	"go.fabprov.dev/internal/mocks/mockingress"
	"go.fabprov.dev/internal/mocks/mockpodexec"
	"go.fabprov.dev/internal/mocks/mockshell"
	"go.fabprov.dev/internal/plog"
)

const (
	caTLSCert = "/certs/ca1-tls.pem"
	caURL     = "https://ca1.example.com"
)

var testCA = CARef{
	Name:      "ca1",
	Namespace: "ca-ns",
	TLSCert:   caTLSCert,
	Ingress:   "ca1-hlf-ca",
	App:       "hlf-ca",
}

func testConfig(workDir string) *provisioner.Config {
	factor := 2.0
	return &provisioner.Config{
		Core: provisioner.CoreSpec{DirConfig: workDir},
		CAs: map[string]provisioner.CASpec{
			"ca1": {Namespace: "ca-ns", TLSCert: caTLSCert, Ingress: "ca1-hlf-ca", App: "hlf-ca"},
		},
		MSPs: map[string]provisioner.MSPSpec{
			"Org1MSP": {
				CA:                 "ca1",
				Namespace:          "org1",
				OrgAdmin:           "org1-admin",
				OrgAdminCredSecret: "hlf--org1-admin-admincred",
			},
		},
		Peers: provisioner.PeerSpec{
			NodeSpec: provisioner.NodeSpec{Names: []string{"peer0", "peer1"}, MSP: "Org1MSP"},
		},
		Orderers: provisioner.OrdererSpec{
			NodeSpec: provisioner.NodeSpec{Names: []string{"ord0"}, MSP: "Org1MSP"},
		},
		Enrollment: provisioner.EnrollmentSpec{
			InitialBackoff: &metav1.Duration{Duration: time.Millisecond},
			MaxBackoff:     &metav1.Duration{Duration: time.Millisecond},
			Factor:         &factor,
			Timeout:        &metav1.Duration{Duration: time.Minute},
		},
	}
}

type testDeps struct {
	workDir   string
	store     *mockcredstore.MockStore
	pods      *mockpodexec.MockExecutor
	handle    *mockpodexec.MockHandle
	ingresses *mockingress.MockResolver
	shell     *mockshell.MockRunner
	log       *bytes.Buffer
}

func newTestProvisioner(t *testing.T) (*Provisioner, *testDeps) {
	t.Helper()

	return newTestProvisionerFor(t, testConfig(t.TempDir()))
}

func newTestProvisionerFor(t *testing.T, config *provisioner.Config) (*Provisioner, *testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	logger, log := plog.TestLogger(t)

	deps := &testDeps{
		workDir:   config.Core.DirConfig,
		store:     mockcredstore.NewMockStore(ctrl),
		pods:      mockpodexec.NewMockExecutor(ctrl),
		handle:    mockpodexec.NewMockHandle(ctrl),
		ingresses: mockingress.NewMockResolver(ctrl),
		shell:     mockshell.NewMockRunner(ctrl),
		log:       log,
	}
	deps.handle.EXPECT().PodName().Return("ca1-hlf-ca-7d9f").AnyTimes()

	p, err := New(config, deps.store, deps.pods, deps.ingresses, deps.shell, logger)
	require.NoError(t, err)
	require.Equal(t, deps.workDir, p.WorkDir())

	return p, deps
}
