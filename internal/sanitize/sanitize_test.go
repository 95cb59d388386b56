package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Machado de Assis", "machado de assis"},
		{"Manuel        Bandeira", "manuel bandeira"},
		{"Edgar Alan Poe         ", "edgar alan poe"},
		{"Androides Sonham Com Ovelhas Elétricas?", "androides sonham com ovelhas elétricas"},
		{"  breve  história  do tempo ", "breve história do tempo"},
		{"O mundo assombrado pelos demônios", "o mundo assombrado pelos demônios"},
		{"Clarice123 Lispector", "clarice lispector"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Name(tc.in), "input %q", tc.in)
	}
}
