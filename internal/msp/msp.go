// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package msp describes the membership service provider directory that fabric-ca-client
// writes on enrollment and the Kubernetes secrets fabprov derives from it.
package msp

import (
	"fmt"
	"path/filepath"
)

// Subfolders of an MSP directory.
const (
	SignCerts         = "signcerts"
	KeyStore          = "keystore"
	CACerts           = "cacerts"
	IntermediateCerts = "intermediatecerts"
	AdminCerts        = "admincerts"
)

// Identity is a CA identity together with the secret it enrolls with.
type Identity struct {
	Username string
	Password string
	// NodeType is the fabric-ca identity type, "peer" or "orderer". Empty for admins.
	NodeType string
}

// CredentialInfo maps one file of an MSP directory to the secret holding it.
type CredentialInfo struct {
	SecretKind      string
	SourceSubfolder string
	SourceFilename  string
	Required        bool
}

var (
	IDCert = CredentialInfo{
		SecretKind:      "idcert",
		SourceSubfolder: SignCerts,
		SourceFilename:  "cert.pem",
		Required:        true,
	}
	IDKey = CredentialInfo{
		SecretKind:      "idkey",
		SourceSubfolder: KeyStore,
		SourceFilename:  "key.pem",
		Required:        true,
	}
	CACert = CredentialInfo{
		SecretKind:      "cacert",
		SourceSubfolder: CACerts,
		SourceFilename:  "cacert.pem",
		Required:        true,
	}
	CAIntCert = CredentialInfo{
		SecretKind:      "caintcert",
		SourceSubfolder: IntermediateCerts,
		SourceFilename:  "intermediatecacert.pem",
		Required:        false,
	}
)

// IdentityCredentials are the signing certificate and private key of an enrolled identity.
func IdentityCredentials() []CredentialInfo {
	return []CredentialInfo{IDCert, IDKey}
}

// TrustChainCredentials are the root and intermediate CA certificates of an enrolled identity.
func TrustChainCredentials() []CredentialInfo {
	return []CredentialInfo{CACert, CAIntCert}
}

func (c CredentialInfo) SecretName(username string) string {
	return fmt.Sprintf("hlf--%s-%s", username, c.SecretKind)
}

func (c CredentialInfo) SourceDir(mspPath string) string {
	return filepath.Join(mspPath, c.SourceSubfolder)
}

// DirName is the directory fabric-ca-client enrolls username into.
func DirName(username string) string {
	return username + "_MSP"
}

func NodeCredSecretName(nodeType, name string) string {
	return fmt.Sprintf("%s--%s-cred", nodeType, name)
}

func AdminCredSecretName(admin string) string {
	return fmt.Sprintf("hlf--%s-admincred", admin)
}

// State is the provisioning progress of one identity. Each state implies the previous ones.
type State int

const (
	Unregistered State = iota
	Registered
	Enrolled
	Materialized
)

func (s State) String() string {
	switch s {
	case Unregistered:
		return "Unregistered"
	case Registered:
		return "Registered"
	case Enrolled:
		return "Enrolled"
	case Materialized:
		return "Materialized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
