package spectral_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSpectral(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Spectral Suite")
}
