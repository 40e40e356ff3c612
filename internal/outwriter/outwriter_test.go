package outwriter

import (
	"testing"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestGetMaxTablePathWidth(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		pathColumns int
		want        int
	}{
		{"narrow override clamps to minimum", 80, 2, 15},
		{"wide override single column", 160, 1, 70},
		{"wide override split two ways", 160, 2, 45},
		{"huge override clamps to maximum", 400, 2, 70},
		{"zero path columns treated as one", 120, 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, getMaxTablePathWidth(cfg, tt.pathColumns))
		})
	}
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	assert.Equal(t, "0.67", fmtFloat(2.0/3.0))
	assert.Equal(t, "%d", intFmt)

	fmtFloat, _ = createFormatters(0)
	assert.Equal(t, "1", fmtFloat(0.6))
}
