package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupportedPlatform(t *testing.T) {
	for _, platform := range []string{PlatformIOS, PlatformAndroid, PlatformWeb} {
		assert.True(t, IsSupportedPlatform(platform), platform)
	}

	for _, platform := range []string{"", "IOS", "windows", "symbian"} {
		assert.False(t, IsSupportedPlatform(platform), platform)
	}
}
