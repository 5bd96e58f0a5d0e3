// Package testsupport holds helpers shared by package tests: temp-dir backed
// configs, history stores with cleanup, and generated QR images.
package testsupport
