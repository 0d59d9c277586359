package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifySizeThresholds(t *testing.T) {
	require.Equal(t, Small, ClassifySize(0))
	require.Equal(t, Small, ClassifySize(99))
	require.Equal(t, Medium, ClassifySize(100))
	require.Equal(t, Medium, ClassifySize(399))
	require.Equal(t, Large, ClassifySize(400))
	require.Equal(t, Large, ClassifySize(1000))
}

func TestTotalBudgetUsesFloorWhenComputedIsLower(t *testing.T) {
	require.Equal(t, 100, TotalBudget(Fast, 10, 2))   // 20 < floor 100
	require.Equal(t, 500, TotalBudget(Balanced, 10, 5)) // 50 < floor 500
	require.Equal(t, 1000, TotalBudget(Thorough, 10, 10)) // 100 < floor 1000
}

func TestTotalBudgetUsesComputedWhenAboveFloor(t *testing.T) {
	require.Equal(t, 1200, TotalBudget(Fast, 600, 2))
	require.Equal(t, 2500, TotalBudget(Balanced, 500, 5))
}

func TestPluginPriorityClassMapping(t *testing.T) {
	require.Equal(t, Critical, PluginPriorityClass("soft.avoid_teacher_gaps"))
	require.Equal(t, Critical, PluginPriorityClass("soft.prefer_morning_difficult"))
	require.Equal(t, High, PluginPriorityClass("soft.subject_spread"))
	require.Equal(t, Medium, PluginPriorityClass("soft.balance_teacher_load"))
	require.Equal(t, Medium, PluginPriorityClass("soft.minimize_room_changes"))
	require.Equal(t, Medium, PluginPriorityClass("soft.distribute_difficult_subjects"))
	require.Equal(t, Low, PluginPriorityClass("soft.collaboration"))
	require.Equal(t, Low, PluginPriorityClass("unknown.plugin.name"))
}

func TestNewBudgetAllocatesPoolsBySizePercentTable(t *testing.T) {
	b := NewBudget(Small, 1000)
	require.Equal(t, 500, b.Pools[Critical])
	require.Equal(t, 300, b.Pools[High])
	require.Equal(t, 150, b.Pools[Medium])
	require.Equal(t, 50, b.Pools[Low])

	large := NewBudget(Large, 1000)
	require.Equal(t, 0, large.Pools[Low])
	require.Equal(t, 700, large.Pools[Critical])
}

func TestBudgetChargeAdmitsWithinPoolAndDropsPastCap(t *testing.T) {
	b := NewBudget(Small, 100) // Critical pool = 50
	admitted, dropped := b.Charge(Critical, 30)
	require.Equal(t, 30, admitted)
	require.Equal(t, 0, dropped)

	admitted, dropped = b.Charge(Critical, 40)
	require.Equal(t, 20, admitted, "only 20 remain in the 50-wide Critical pool after the first charge of 30")
	require.Equal(t, 20, dropped)

	spent, droppedTotal := b.Usage()
	require.Equal(t, 50, spent[Critical])
	require.Equal(t, 20, droppedTotal[Critical])
}

func TestBudgetChargeNeverAdmitsBelowZeroRemaining(t *testing.T) {
	b := NewBudget(Small, 100) // Critical pool = 50
	b.Charge(Critical, 50)     // exhausts the pool
	admitted, dropped := b.Charge(Critical, 10)
	require.Equal(t, 0, admitted)
	require.Equal(t, 10, dropped)
}
