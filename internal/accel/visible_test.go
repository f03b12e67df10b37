package accel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVisibleSelector_Resolve(t *testing.T) {
	uuids := []string{"GPU-aaaa-1111", "GPU-bbbb-2222", "GPU-cccc-3333"}
	uuidOf := func(i int) string { return uuids[i] }

	tests := []struct {
		name  string
		value string
		set   bool
		want  []int
	}{
		{name: "unset shows all", set: false, want: []int{0, 1, 2}},
		{name: "empty hides all", value: "", set: true, want: nil},
		{name: "minus one hides all", value: "-1", set: true, want: nil},
		{name: "reorder", value: "2,0", set: true, want: []int{2, 0}},
		{name: "stops at invalid", value: "1,foo,2", set: true, want: []int{1}},
		{name: "stops at out of range", value: "0,7,1", set: true, want: []int{0}},
		{name: "uuid prefix", value: "GPU-bbbb", set: true, want: []int{1}},
		{name: "quoted with spaces", value: ` "0" , 2 `, set: true, want: []int{0, 2}},
		{name: "duplicate stops", value: "0,0,1", set: true, want: []int{0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseVisible(tt.value, tt.set).resolve(len(uuids), uuidOf)
			assert.Equal(t, tt.want, got)
		})
	}
}
