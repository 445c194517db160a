// Package testsupport builds temporary configurations and catalogs for tests.
package testsupport
