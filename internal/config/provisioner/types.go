// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package provisioner

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"go.fabprov.dev/internal/plog"
)

const (
	NodeTypePeer    = "peer"
	NodeTypeOrderer = "orderer"
)

// Config describes one Fabric network deployment: its CAs, its organizations (MSPs) and the
// peer and orderer nodes whose identities fabprov provisions.
type Config struct {
	Core       CoreSpec           `json:"core"`
	CAs        map[string]CASpec  `json:"cas"`
	MSPs       map[string]MSPSpec `json:"msps"`
	Orderers   OrdererSpec        `json:"orderers"`
	Peers      PeerSpec           `json:"peers"`
	Enrollment EnrollmentSpec     `json:"enrollment"`
	Log        plog.LogSpec       `json:"log"`
}

type CoreSpec struct {
	// DirConfig is the local working directory that holds enrolled MSP directories and
	// generated channel artifacts.
	DirConfig string `json:"dirConfig"`
}

// CASpec locates a Fabric CA deployed as a helm release of the same name.
type CASpec struct {
	Namespace string `json:"namespace"`
	// TLSCert is the path of the certificate used to verify the CA's TLS endpoint during enrollment.
	TLSCert string `json:"tlsCert"`
	// Ingress defaults to "<ca name>-hlf-ca".
	Ingress string `json:"ingress,omitempty"`
	// App is the value of the "app" label on the CA pods. Defaults to "hlf-ca".
	App string `json:"app,omitempty"`
}

type MSPSpec struct {
	CA string `json:"ca"`
	// Namespace receives the organization's secrets. Defaults to the namespace of its CA.
	Namespace        string `json:"namespace,omitempty"`
	OrgAdmin         string `json:"orgAdmin"`
	OrgAdminPassword string `json:"orgAdminPassword,omitempty"`
	// OrgAdminCredSecret defaults to "hlf--<orgAdmin>-admincred".
	OrgAdminCredSecret string `json:"orgAdminCredSecret,omitempty"`
}

type NodeSpec struct {
	Names []string `json:"names"`
	MSP   string   `json:"msp"`
}

type OrdererSpec struct {
	NodeSpec      `json:",inline"`
	SecretGenesis string `json:"secretGenesis,omitempty"`
}

type PeerSpec struct {
	NodeSpec       `json:",inline"`
	ChannelName    string `json:"channelName,omitempty"`
	ChannelProfile string `json:"channelProfile,omitempty"`
	SecretChannel  string `json:"secretChannel,omitempty"`
}

// EnrollmentSpec bounds the retries of node enrollment against a CA that may not be reachable yet.
type EnrollmentSpec struct {
	InitialBackoff *metav1.Duration `json:"initialBackoff,omitempty"`
	MaxBackoff     *metav1.Duration `json:"maxBackoff,omitempty"`
	Factor         *float64         `json:"factor,omitempty"`
	Timeout        *metav1.Duration `json:"timeout,omitempty"`
}
