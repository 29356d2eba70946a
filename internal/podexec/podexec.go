// Copyright 2024 the Fabprov contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package podexec runs commands inside pods of a helm release, such as fabric-ca-client in a
// Fabric CA pod.
package podexec

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	restclient "k8s.io/client-go/rest"
	"k8s.io/client-go/tools/remotecommand"

	"go.fabprov.dev/internal/constable"
	"go.fabprov.dev/internal/plog"
)

const ErrNoRunningPod = constable.Error("no running pod found")

// Executor locates a running pod of a release so that commands can be run in it.
type Executor interface {
	ExecIn(ctx context.Context, namespace, release, app string) (Handle, error)
}

// Handle runs commands in one selected pod.
type Handle interface {
	Run(ctx context.Context, commandAndArgs ...string) (stdout string, err error)
	PodName() string
}

type newSPDYExecutorFunc func(config *restclient.Config, method string, url *url.URL) (remotecommand.Executor, error)

type kubeClientExecutor struct {
	kubeConfig      *restclient.Config
	kubeClient      kubernetes.Interface
	newSPDYExecutor newSPDYExecutorFunc
	log             plog.Logger
}

var _ Executor = (*kubeClientExecutor)(nil)

// New returns an Executor that will interact with pods via the provided kubeConfig and
// corresponding kubeClient. The kubeConfig should use JSON content types.
func New(kubeConfig *restclient.Config, kubeClient kubernetes.Interface, log plog.Logger) Executor {
	return &kubeClientExecutor{
		kubeConfig:      kubeConfig,
		kubeClient:      kubeClient,
		newSPDYExecutor: remotecommand.NewSPDYExecutor,
		log:             log,
	}
}

func (e *kubeClientExecutor) ExecIn(ctx context.Context, namespace, release, app string) (Handle, error) {
	selector := labels.SelectorFromSet(labels.Set{"app": app, "release": release}).String()

	pods, err := e.kubeClient.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("list pods %q in namespace %q: %w", selector, namespace, err)
	}

	pod := selectRunningPod(pods.Items)
	if pod == nil {
		return nil, fmt.Errorf("%w: namespace %q selector %q", ErrNoRunningPod, namespace, selector)
	}

	e.log.Debug("selected pod for exec", "namespace", namespace, "pod", pod.Name, "selector", selector)

	return &podHandle{executor: e, namespace: namespace, name: pod.Name}, nil
}

// selectRunningPod prefers the oldest running pod that is not being deleted. Ties are broken by name.
func selectRunningPod(pods []corev1.Pod) *corev1.Pod {
	candidates := make([]*corev1.Pod, 0, len(pods))
	for i := range pods {
		pod := &pods[i]
		if pod.Status.Phase != corev1.PodRunning || pod.DeletionTimestamp != nil {
			continue
		}
		candidates = append(candidates, pod)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ti, tj := candidates[i].CreationTimestamp, candidates[j].CreationTimestamp
		if !ti.Equal(&tj) {
			return ti.Before(&tj)
		}
		return candidates[i].Name < candidates[j].Name
	})
	return candidates[0]
}

type podHandle struct {
	executor  *kubeClientExecutor
	namespace string
	name      string
}

func (h *podHandle) PodName() string {
	return h.name
}

func (h *podHandle) Run(ctx context.Context, commandAndArgs ...string) (string, error) {
	if len(commandAndArgs) == 0 {
		return "", constable.Error("no command given")
	}

	request := h.executor.kubeClient.
		CoreV1().
		RESTClient().
		Post().
		Namespace(h.namespace).
		Resource("pods").
		Name(h.name).
		SubResource("exec").
		VersionedParams(&corev1.PodExecOptions{
			Stdin:   false,
			Stdout:  true,
			Stderr:  true,
			TTY:     false,
			Command: commandAndArgs,
		}, scheme.ParameterCodec)

	executor, err := h.executor.newSPDYExecutor(h.executor.kubeConfig, "POST", request.URL())
	if err != nil {
		return "", fmt.Errorf("create executor for pod %s/%s: %w", h.namespace, h.name, err)
	}

	h.executor.log.Trace("exec in pod", "pod", h.name, "command", commandAndArgs[0])

	var stdoutBuf, stderrBuf bytes.Buffer
	if err := executor.StreamWithContext(ctx, remotecommand.StreamOptions{Stdout: &stdoutBuf, Stderr: &stderrBuf}); err != nil {
		if stderr := strings.TrimSpace(stderrBuf.String()); stderr != "" {
			return "", fmt.Errorf("exec %q in pod %s/%s: %w: %s", commandAndArgs[0], h.namespace, h.name, err, stderr)
		}
		return "", fmt.Errorf("exec %q in pod %s/%s: %w", commandAndArgs[0], h.namespace, h.name, err)
	}
	return stdoutBuf.String(), nil
}
