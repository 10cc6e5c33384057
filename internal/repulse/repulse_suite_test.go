package repulse

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRepulse(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Repulse Suite")
}
