// Package secretcheck holds static checks over the packages that handle key
// material and plaintext. It has no API; the checks run as tests.
package secretcheck
