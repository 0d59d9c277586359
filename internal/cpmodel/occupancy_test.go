package cpmodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOccupancyFreeReserveRelease(t *testing.T) {
	o := NewOccupancy()
	require.True(t, o.Free("c1", "t1", "r1", 0, 2))

	o.Reserve("c1", "t1", "r1", 0, 2, 5)
	require.False(t, o.Free("c1", "t2", "r2", 1, 1), "class overlap at slot 1 should block")
	require.False(t, o.Free("c2", "t1", "r2", 1, 1), "teacher overlap at slot 1 should block")
	require.False(t, o.Free("c2", "t2", "r1", 1, 1), "room overlap at slot 1 should block")
	require.True(t, o.Free("c2", "t2", "r2", 2, 1), "slot 2 was never reserved")

	o.Release("c1", "t1", "r1", 0, 2)
	require.True(t, o.Free("c1", "t1", "r1", 0, 2))
}

func TestOccupancyIgnoresEmptyTeacherOrRoom(t *testing.T) {
	o := NewOccupancy()
	o.Reserve("c1", "", "", 0, 1, 1)
	require.True(t, o.Free("c2", "", "", 0, 1), "a blank teacher/room id should never claim a slot")
}

func TestOccupancyCloneIsIndependent(t *testing.T) {
	o := NewOccupancy()
	o.Reserve("c1", "t1", "r1", 0, 1, 1)

	clone := o.Clone()
	clone.Reserve("c2", "t2", "r2", 0, 1, 2)

	require.True(t, o.Free("c2", "t2", "r2", 0, 1), "mutating the clone must not affect the original")
	require.False(t, clone.Free("c1", "t1", "r1", 0, 1), "the clone must still carry the original's reservations")
}
