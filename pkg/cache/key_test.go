package cache

import (
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "full key",
			key:  Key{AccountID: "184562", States: "completed", PerPage: 50, Page: 3},
			want: "truecoach:workouts:184562:completed:50:3",
		},
		{
			name: "empty states normalized",
			key:  Key{AccountID: "184562", States: "", PerPage: 50, Page: 1},
			want: "truecoach:workouts:184562:all:50:1",
		},
		{
			name: "distinct pages produce distinct keys",
			key:  Key{AccountID: "184562", States: "missed", PerPage: 25, Page: 2},
			want: "truecoach:workouts:184562:missed:25:2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKey_Deterministic(t *testing.T) {
	key := Key{AccountID: "9", States: "completed", PerPage: 50, Page: 1}
	first := key.String()
	for i := 0; i < 10; i++ {
		if got := key.String(); got != first {
			t.Fatalf("String() not deterministic: %q != %q", got, first)
		}
	}
}
