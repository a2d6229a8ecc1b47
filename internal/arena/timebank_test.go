package arena

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeBank(t *testing.T) {
	tests := []struct {
		name   string
		spend  []time.Duration
		bank   time.Duration
		budget time.Duration
	}{
		{"fresh", nil, 2 * time.Second, 3 * time.Second},
		{"overrun draws the bank down", []time.Duration{1500 * time.Millisecond}, 1500 * time.Millisecond, 2500 * time.Millisecond},
		{"bank never goes negative", []time.Duration{10 * time.Second}, 0, time.Second},
		{"under-run refills", []time.Duration{2 * time.Second, 200 * time.Millisecond}, 1800 * time.Millisecond, 2800 * time.Millisecond},
		{"refill is capped", []time.Duration{0, 0, 0}, 2 * time.Second, 3 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := NewTimeBank(time.Second, 2*time.Second)
			for _, d := range tt.spend {
				tb.Spend(d)
			}
			assert.Equal(t, tt.bank, tb.Remaining())
			assert.Equal(t, tt.budget, tb.Budget())
		})
	}
}
