// Package mratool provisions and runs the external mra tool that turns MRA
// files into ARC files.
package mratool

import (
	"fmt"

	"github.com/arthur-debert/arcbuilder/pkg/fetch"
)

// DefaultBaseURL is where release binaries of the tool are published.
const DefaultBaseURL = "https://github.com/kounch/mra-tools-c/raw/master/release/"

// BinaryName returns the release path of the tool binary for a platform,
// relative to the release base URL.
func BinaryName(goos, goarch string) (string, error) {
	switch goos {
	case "darwin":
		return "macos/mra", nil
	case "windows":
		return "windows/mra.exe", nil
	case "linux":
		switch goarch {
		case "amd64", "386":
			return "linux/mra", nil
		case "arm":
			return "linux/mra.armv7l", nil
		case "arm64":
			return "linux/mra.aarch64", nil
		}
	}
	return "", fmt.Errorf("no mra tool release for %s/%s", goos, goarch)
}

// DownloadURL returns the download location of the tool binary.
func DownloadURL(base, goos, goarch string) (string, error) {
	name, err := BinaryName(goos, goarch)
	if err != nil {
		return "", err
	}
	if base == "" {
		base = DefaultBaseURL
	}
	return fetch.JoinURL(base, name), nil
}
