package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		quiet     bool
		wantDebug bool
		wantWarn  bool
	}{
		{name: "default", wantWarn: true},
		{name: "debug", debug: true, wantDebug: true, wantWarn: true},
		{name: "quiet", quiet: true},
		{name: "debug wins over quiet", debug: true, quiet: true, wantDebug: true, wantWarn: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.debug, tt.quiet)

			log.Debug().Msg("debug line")
			log.Warn().Msg("warn line")
			log.Error().Msg("error line")

			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, tt.wantWarn, bytes.Contains(buf.Bytes(), []byte("warn line")))
			assert.Contains(t, buf.String(), "error line")
		})
	}
}
