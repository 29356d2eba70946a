// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package credstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-password/password"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	kubernetesfake "k8s.io/client-go/kubernetes/fake"
	coretesting "k8s.io/client-go/testing"

	"go.fabprov.dev/internal/plog"
)

const namespace = "org1"

var (
	secretsGVR    = corev1.SchemeGroupVersion.WithResource("secrets")
	namespacesGVR = corev1.SchemeGroupVersion.WithResource("namespaces")
	managedLabels = map[string]string{"app.kubernetes.io/managed-by": "fabprov"}
)

func secret(name string, data map[string][]byte) *corev1.Secret {
	return &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace, Labels: managedLabels},
		Type:       corev1.SecretTypeOpaque,
		Data:       data,
	}
}

func TestCredentialSecret(t *testing.T) {
	tests := []struct {
		name        string
		existing    []runtime.Object
		reactors    func(*kubernetesfake.Clientset)
		generator   password.PasswordGenerator
		username    string
		password    string
		want        Credentials
		wantErr     string
		wantActions []coretesting.Action
	}{
		{
			name:      "creates the secret with a generated password",
			generator: password.NewMockGenerator("generated-password", nil),
			username:  "peer0",
			want:      Credentials{Username: "peer0", Password: "generated-password"},
			wantActions: []coretesting.Action{
				coretesting.NewGetAction(secretsGVR, namespace, "peer--peer0-cred"),
				coretesting.NewCreateAction(secretsGVR, namespace, secret("peer--peer0-cred", map[string][]byte{
					"CA_USERNAME": []byte("peer0"),
					"CA_PASSWORD": []byte("generated-password"),
				})),
			},
		},
		{
			name:      "creates the secret with the given password",
			generator: password.NewMockGenerator("", errors.New("should not be called")),
			username:  "peer0",
			password:  "configured",
			want:      Credentials{Username: "peer0", Password: "configured"},
			wantActions: []coretesting.Action{
				coretesting.NewGetAction(secretsGVR, namespace, "peer--peer0-cred"),
				coretesting.NewCreateAction(secretsGVR, namespace, secret("peer--peer0-cred", map[string][]byte{
					"CA_USERNAME": []byte("peer0"),
					"CA_PASSWORD": []byte("configured"),
				})),
			},
		},
		{
			name: "returns the stored credentials without regenerating",
			existing: []runtime.Object{secret("peer--peer0-cred", map[string][]byte{
				"CA_USERNAME": []byte("peer0"),
				"CA_PASSWORD": []byte("from-first-run"),
			})},
			generator: password.NewMockGenerator("", errors.New("should not be called")),
			username:  "peer0",
			password:  "ignored",
			want:      Credentials{Username: "peer0", Password: "from-first-run"},
			wantActions: []coretesting.Action{
				coretesting.NewGetAction(secretsGVR, namespace, "peer--peer0-cred"),
			},
		},
		{
			name:     "stored secret without a password",
			existing: []runtime.Object{secret("peer--peer0-cred", map[string][]byte{"CA_USERNAME": []byte("peer0")})},
			username: "peer0",
			wantErr:  "secret is missing key CA_PASSWORD: org1/peer--peer0-cred",
			wantActions: []coretesting.Action{
				coretesting.NewGetAction(secretsGVR, namespace, "peer--peer0-cred"),
			},
		},
		{
			name:      "password generation fails",
			generator: password.NewMockGenerator("", errors.New("no entropy")),
			username:  "peer0",
			wantErr:   "failed to generate password for secret org1/peer--peer0-cred: no entropy",
			wantActions: []coretesting.Action{
				coretesting.NewGetAction(secretsGVR, namespace, "peer--peer0-cred"),
			},
		},
		{
			name: "get fails",
			reactors: func(client *kubernetesfake.Clientset) {
				client.PrependReactor("get", "secrets", func(coretesting.Action) (bool, runtime.Object, error) {
					return true, nil, errors.New("some get error")
				})
			},
			username: "peer0",
			wantErr:  "failed to get secret org1/peer--peer0-cred: some get error",
			wantActions: []coretesting.Action{
				coretesting.NewGetAction(secretsGVR, namespace, "peer--peer0-cred"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := kubernetesfake.NewSimpleClientset(tt.existing...)
			if tt.reactors != nil {
				tt.reactors(client)
			}
			logger, _ := plog.TestLogger(t)
			store := New(client, tt.generator, logger)

			got, err := store.CredentialSecret(context.Background(), "peer--peer0-cred", namespace, tt.username, tt.password)
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.Equal(t, tt.wantActions, client.Actions())
		})
	}
}

func TestCredentialSecretIsStableAcrossRuns(t *testing.T) {
	client := kubernetesfake.NewSimpleClientset()
	logger, _ := plog.TestLogger(t)

	first, err := New(client, password.NewMockGenerator("first", nil), logger).
		CredentialSecret(context.Background(), "orderer--ord0-cred", namespace, "ord0", "")
	require.NoError(t, err)

	second, err := New(client, password.NewMockGenerator("second", nil), logger).
		CredentialSecret(context.Background(), "orderer--ord0-cred", namespace, "ord0", "")
	require.NoError(t, err)

	require.Equal(t, Credentials{Username: "ord0", Password: "first"}, first)
	require.Equal(t, first, second)
}

func TestCryptoSecret(t *testing.T) {
	dir := t.TempDir()
	keystore := filepath.Join(dir, "keystore")
	require.NoError(t, os.Mkdir(keystore, 0o700))
	require.NoError(t, os.Mkdir(filepath.Join(keystore, "nested"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(keystore, "a1b2_sk"), []byte("private key"), 0o600))
	emptyDir := filepath.Join(dir, "intermediatecerts")
	require.NoError(t, os.Mkdir(emptyDir, 0o700))

	client := kubernetesfake.NewSimpleClientset()
	logger, log := plog.TestLogger(t)
	store := New(client, nil, logger)

	require.NoError(t, store.CryptoSecret(context.Background(), "hlf--peer0-idkey", namespace, keystore, "key.pem"))
	require.Equal(t, []coretesting.Action{
		coretesting.NewGetAction(secretsGVR, namespace, "hlf--peer0-idkey"),
		coretesting.NewCreateAction(secretsGVR, namespace, secret("hlf--peer0-idkey", map[string][]byte{
			"key.pem": []byte("private key"),
		})),
	}, client.Actions())
	require.Contains(t, log.String(), `"message":"created secret","secret":"hlf--peer0-idkey","namespace":"org1"`)

	client.ClearActions()
	require.NoError(t, store.CryptoSecret(context.Background(), "hlf--peer0-idkey", namespace, keystore, "key.pem"))
	require.Equal(t, []coretesting.Action{
		coretesting.NewGetAction(secretsGVR, namespace, "hlf--peer0-idkey"),
	}, client.Actions())

	client.ClearActions()
	err := store.CryptoSecret(context.Background(), "hlf--peer0-caintcert", namespace, emptyDir, "intermediatecacert.pem")
	require.ErrorIs(t, err, ErrEmptyDirectory)
	require.EqualError(t, err, "directory contains no files: "+emptyDir)

	err = store.CryptoSecret(context.Background(), "hlf--peer0-caintcert", namespace, filepath.Join(dir, "missing"), "intermediatecacert.pem")
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Empty(t, client.Actions())
}

func TestSecretFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.block")
	require.NoError(t, os.WriteFile(path, []byte{0x0a, 0x01}, 0o600))

	client := kubernetesfake.NewSimpleClientset()
	logger, _ := plog.TestLogger(t)
	store := New(client, nil, logger)

	require.NoError(t, store.SecretFromFile(context.Background(), "hlf--genesis", namespace, "genesis.block", path))

	got, err := client.CoreV1().Secrets(namespace).Get(context.Background(), "hlf--genesis", metav1.GetOptions{})
	require.NoError(t, err)
	require.Equal(t, map[string][]byte{"genesis.block": {0x0a, 0x01}}, got.Data)

	err = store.SecretFromFile(context.Background(), "hlf--genesis", namespace, "genesis.block", path+".missing")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSecretFromLiteral(t *testing.T) {
	client := kubernetesfake.NewSimpleClientset()
	logger, _ := plog.TestLogger(t)
	store := New(client, nil, logger)

	require.NoError(t, store.SecretFromLiteral(context.Background(), "hlf--channel", namespace, "channel.name", "mychannel", true))
	require.NoError(t, store.SecretFromLiteral(context.Background(), "hlf--optional", namespace, "value", "", false))

	err := store.SecretFromLiteral(context.Background(), "hlf--required", namespace, "value", "", true)
	require.ErrorIs(t, err, ErrMissingValue)
	require.EqualError(t, err, "required secret value is empty: value in secret org1/hlf--required")

	secrets, err := client.CoreV1().Secrets(namespace).List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	require.Len(t, secrets.Items, 1)
	require.Equal(t, "hlf--channel", secrets.Items[0].Name)
	require.Equal(t, []byte("mychannel"), secrets.Items[0].Data["channel.name"])
}

func TestEnsureNamespace(t *testing.T) {
	tests := []struct {
		name        string
		existing    []runtime.Object
		wantActions []coretesting.Action
	}{
		{
			name: "creates a missing namespace",
			wantActions: []coretesting.Action{
				coretesting.NewRootGetAction(namespacesGVR, "org1"),
				coretesting.NewRootCreateAction(namespacesGVR, &corev1.Namespace{
					ObjectMeta: metav1.ObjectMeta{Name: "org1", Labels: managedLabels},
				}),
			},
		},
		{
			name:     "leaves an existing namespace alone",
			existing: []runtime.Object{&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "org1"}}},
			wantActions: []coretesting.Action{
				coretesting.NewRootGetAction(namespacesGVR, "org1"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := kubernetesfake.NewSimpleClientset(tt.existing...)
			logger, _ := plog.TestLogger(t)

			require.NoError(t, New(client, nil, logger).EnsureNamespace(context.Background(), "org1"))
			require.Equal(t, tt.wantActions, client.Actions())
		})
	}
}
