// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package credstore keeps identity credentials and crypto material in Kubernetes secrets.
// Every write is read-before-write: a secret that already exists is never modified.
package credstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-password/password"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"go.fabprov.dev/internal/constable"
	"go.fabprov.dev/internal/plog"
)

//nolint:gosec // these are the names of keys, not credentials
const (
	UsernameKey = "CA_USERNAME"
	PasswordKey = "CA_PASSWORD"

	managedByLabelKey   = "app.kubernetes.io/managed-by"
	managedByLabelValue = "fabprov"

	passwordLength = 24
	passwordDigits = 10

	ErrEmptyDirectory = constable.Error("directory contains no files")
	ErrMissingValue   = constable.Error("required secret value is empty")
	ErrMissingKey     = constable.Error("secret is missing key")
)

type Credentials struct {
	Username string
	Password string
}

type Store interface {
	// CredentialSecret returns the credentials stored in secret name. When the secret does not
	// exist it is created from username and password, generating the password when it is empty.
	CredentialSecret(ctx context.Context, name, namespace, username, password string) (Credentials, error)
	// SecretFromFile stores the contents of path under key.
	SecretFromFile(ctx context.Context, name, namespace, key, path string) error
	// CryptoSecret stores the first file of dir under key. fabric-ca-client names some files
	// itself (keystore/<ski>_sk), so only the directory is known in advance.
	CryptoSecret(ctx context.Context, name, namespace, dir, key string) error
	// SecretFromLiteral stores value under key. An empty value is an error when required and
	// is skipped otherwise.
	SecretFromLiteral(ctx context.Context, name, namespace, key, value string, required bool) error
	EnsureNamespace(ctx context.Context, namespace string) error
}

type secretStore struct {
	client    kubernetes.Interface
	generator password.PasswordGenerator
	log       plog.Logger
}

var _ Store = (*secretStore)(nil)

func New(client kubernetes.Interface, generator password.PasswordGenerator, log plog.Logger) Store {
	return &secretStore{client: client, generator: generator, log: log}
}

func (s *secretStore) CredentialSecret(ctx context.Context, name, namespace, username, pw string) (Credentials, error) {
	secret, err := s.get(ctx, name, namespace)
	if err != nil {
		return Credentials{}, err
	}
	if secret != nil {
		return credentialsFrom(secret)
	}

	if pw == "" {
		pw, err = s.generator.Generate(passwordLength, passwordDigits, 0, false, true)
		if err != nil {
			return Credentials{}, fmt.Errorf("failed to generate password for secret %s/%s: %w", namespace, name, err)
		}
	}

	created, err := s.create(ctx, name, namespace, map[string][]byte{
		UsernameKey: []byte(username),
		PasswordKey: []byte(pw),
	})
	if err != nil {
		return Credentials{}, err
	}
	return credentialsFrom(created)
}

func credentialsFrom(secret *corev1.Secret) (Credentials, error) {
	for _, key := range []string{UsernameKey, PasswordKey} {
		if len(secret.Data[key]) == 0 {
			return Credentials{}, fmt.Errorf("%w %s: %s/%s", ErrMissingKey, key, secret.Namespace, secret.Name)
		}
	}
	return Credentials{
		Username: string(secret.Data[UsernameKey]),
		Password: string(secret.Data[PasswordKey]),
	}, nil
}

func (s *secretStore) SecretFromFile(ctx context.Context, name, namespace, key, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s for secret %s/%s: %w", path, namespace, name, err)
	}
	return s.ensure(ctx, name, namespace, map[string][]byte{key: data})
}

func (s *secretStore) CryptoSecret(ctx context.Context, name, namespace, dir, key string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to list %s for secret %s/%s: %w", dir, namespace, name, err)
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			return s.SecretFromFile(ctx, name, namespace, key, filepath.Join(dir, entry.Name()))
		}
	}
	return fmt.Errorf("%w: %s", ErrEmptyDirectory, dir)
}

func (s *secretStore) SecretFromLiteral(ctx context.Context, name, namespace, key, value string, required bool) error {
	if value == "" {
		if required {
			return fmt.Errorf("%w: %s in secret %s/%s", ErrMissingValue, key, namespace, name)
		}
		s.log.Debug("skipping empty optional secret", "secret", name, "namespace", namespace, "key", key)
		return nil
	}
	return s.ensure(ctx, name, namespace, map[string][]byte{key: []byte(value)})
}

func (s *secretStore) EnsureNamespace(ctx context.Context, namespace string) error {
	_, err := s.client.CoreV1().Namespaces().Get(ctx, namespace, metav1.GetOptions{})
	if err == nil {
		return nil
	}
	if !apierrors.IsNotFound(err) {
		return fmt.Errorf("failed to get namespace %s: %w", namespace, err)
	}

	_, err = s.client.CoreV1().Namespaces().Create(ctx, &corev1.Namespace{
		ObjectMeta: metav1.ObjectMeta{
			Name:   namespace,
			Labels: map[string]string{managedByLabelKey: managedByLabelValue},
		},
	}, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create namespace %s: %w", namespace, err)
	}
	s.log.Info("created namespace", "namespace", namespace)
	return nil
}

func (s *secretStore) ensure(ctx context.Context, name, namespace string, data map[string][]byte) error {
	existing, err := s.get(ctx, name, namespace)
	if err != nil {
		return err
	}
	if existing != nil {
		s.log.Debug("secret already exists", "secret", name, "namespace", namespace)
		return nil
	}
	_, err = s.create(ctx, name, namespace, data)
	return err
}

// get returns nil without an error when the secret does not exist.
func (s *secretStore) get(ctx context.Context, name, namespace string) (*corev1.Secret, error) {
	secret, err := s.client.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s/%s: %w", namespace, name, err)
	}
	return secret, nil
}

// create tolerates losing a race with another writer by returning the winner's secret.
func (s *secretStore) create(ctx context.Context, name, namespace string, data map[string][]byte) (*corev1.Secret, error) {
	secret, err := s.client.CoreV1().Secrets(namespace).Create(ctx, &corev1.Secret{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels:    map[string]string{managedByLabelKey: managedByLabelValue},
		},
		Type: corev1.SecretTypeOpaque,
		Data: data,
	}, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		existing, getErr := s.client.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
		if getErr != nil {
			return nil, fmt.Errorf("failed to get secret %s/%s: %w", namespace, name, getErr)
		}
		return existing, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create secret %s/%s: %w", namespace, name, err)
	}
	s.log.Info("created secret", "secret", name, "namespace", namespace)
	return secret, nil
}
