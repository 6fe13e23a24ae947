package useragent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	assert.Equal(t, "Chrome 120 on Windows 10", Describe(chrome))
	assert.Equal(t, "Unknown device", Describe(""))
}

func TestParseMobile(t *testing.T) {
	iphone := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	info := Parse(iphone)
	assert.Equal(t, "mobile", info.DeviceType)
	assert.False(t, info.IsBot)
}
