package client

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/naveenspark/sportex/pkg/domain"
)

func TestAthleteQuery(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.AthleteFilter
		want   string
	}{
		{"empty", domain.AthleteFilter{}, ""},
		{"stat key alone dropped", domain.AthleteFilter{StatKey: "ppg"}, ""},
		{"stat value alone dropped", domain.AthleteFilter{StatValue: "20"}, ""},
		{"stat pair", domain.AthleteFilter{StatKey: "ppg", StatValue: "20"}, "min_stat_key=ppg&min_stat_value=20"},
		{
			"all fields in fixed order",
			domain.AthleteFilter{Location: "Austin", Position: "Guard", Sport: "basketball", StatValue: "5", StatKey: "apg"},
			"sport=basketball&position=Guard&location=Austin&min_stat_key=apg&min_stat_value=5",
		},
		{"escaping", domain.AthleteFilter{Location: "St. Louis, MO", Sport: "track & field"}, "sport=track+%26+field&location=St.+Louis%2C+MO"},
		{"lone key with other fields", domain.AthleteFilter{Sport: "soccer", StatKey: "goals"}, "sport=soccer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AthleteQuery(tt.filter))
		})
	}
}

func TestAthleteQueryDeterministic(t *testing.T) {
	f := domain.AthleteFilter{Sport: "rugby", Position: "Wing", StatKey: "tries", StatValue: "3"}
	first := AthleteQuery(f)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, AthleteQuery(f))
	}
}
