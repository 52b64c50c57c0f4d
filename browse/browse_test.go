package browse

import (
	"testing"
	"time"

	"mealbridge-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func donation(donor string, foodType models.FoodType, quantity, location string, expiresIn, age time.Duration) models.Donation {
	return models.Donation{
		DonorName:  donor,
		FoodType:   foodType,
		MealType:   models.Lunch,
		Quantity:   quantity,
		Location:   location,
		ExpiryTime: testNow.Add(expiresIn),
		Status:     models.Available,
		CreatedAt:  testNow.Add(-age),
	}
}

func TestApplyFoodTypeFilter(t *testing.T) {
	records := []models.Donation{
		donation("a", models.Veg, "10 meals", "Downtown", 3*time.Hour, time.Hour),
		donation("b", models.NonVeg, "5 meals", "Midtown", 3*time.Hour, time.Hour),
		donation("c", models.Veg, "8 meals", "Uptown", 3*time.Hour, time.Hour),
	}

	out := Apply(records, Filters{FoodType: "veg"}, "", testNow)
	require.Len(t, out, 2)
	for _, d := range out {
		assert.Equal(t, models.Veg, d.FoodType)
	}

	out = Apply(records, Filters{FoodType: "non-veg"}, "", testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].DonorName)

	assert.Len(t, Apply(records, Filters{FoodType: "all"}, "", testNow), 3)
	assert.Len(t, Apply(records, Filters{}, "", testNow), 3)
}

func TestApplyUrgentOnly(t *testing.T) {
	records := []models.Donation{
		donation("soon", models.Veg, "10 meals", "Downtown", 45*time.Minute, 0),
		donation("later", models.Veg, "10 meals", "Downtown", 180*time.Minute, 0),
		donation("exact", models.Veg, "10 meals", "Downtown", 2*time.Hour, 0),
		donation("past", models.Veg, "10 meals", "Downtown", -10*time.Minute, 0),
	}

	out := Apply(records, Filters{UrgentOnly: true}, "", testNow)
	names := make([]string, 0, len(out))
	for _, d := range out {
		names = append(names, d.DonorName)
		assert.LessOrEqual(t, d.ExpiryTime.Sub(testNow), UrgencyWindow)
	}

	// 45m and exactly 2h are in; 3h is out; already-expired records pass the
	// urgency filter too.
	assert.ElementsMatch(t, []string{"soon", "exact", "past"}, names)
}

func TestApplySubstringFilters(t *testing.T) {
	records := []models.Donation{
		donation("a", models.Veg, "25 Meals", "123 Main Street, Downtown", 3*time.Hour, 0),
		donation("b", models.Veg, "3 boxes", "456 Oak Avenue, Midtown", 3*time.Hour, 0),
	}

	out := Apply(records, Filters{Quantity: "meals"}, "", testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].DonorName)

	out = Apply(records, Filters{}, "oak avenue", testNow)
	require.Len(t, out, 1)
	assert.Equal(t, "b", out[0].DonorName)

	assert.Empty(t, Apply(records, Filters{}, "Pine", testNow))
}

func TestApplySortLatest(t *testing.T) {
	a := donation("A", models.Veg, "10 meals", "x", 3*time.Hour, 60*time.Minute)
	b := donation("B", models.Veg, "25 meals", "x", 3*time.Hour, 5*time.Minute)

	out := Apply([]models.Donation{a, b}, Filters{SortBy: SortLatest}, "", testNow)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].DonorName)
	assert.Equal(t, "A", out[1].DonorName)

	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].CreatedAt.After(out[i-1].CreatedAt))
	}
}

func TestApplySortQuantity(t *testing.T) {
	records := []models.Donation{
		donation("A", models.Veg, "10 meals", "x", 3*time.Hour, time.Hour),
		donation("B", models.Veg, "25 meals", "x", 3*time.Hour, time.Hour),
		donation("C", models.Veg, "a few trays", "x", 3*time.Hour, time.Hour),
	}

	out := Apply(records, Filters{SortBy: SortQuantity}, "", testNow)
	require.Len(t, out, 3)
	assert.Equal(t, "B", out[0].DonorName)
	assert.Equal(t, "A", out[1].DonorName)
	assert.Equal(t, "C", out[2].DonorName)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, LeadingInt(out[i-1].Quantity), LeadingInt(out[i].Quantity))
	}
}

func TestApplySortNearestKeepsOrder(t *testing.T) {
	records := []models.Donation{
		donation("first", models.Veg, "1 meal", "x", 3*time.Hour, time.Hour),
		donation("second", models.Veg, "99 meals", "x", 3*time.Hour, time.Minute),
		donation("third", models.Veg, "5 meals", "x", 3*time.Hour, 2*time.Hour),
	}

	out := Apply(records, Filters{SortBy: SortNearest, Distance: 10}, "", testNow)
	require.Len(t, out, 3)
	assert.Equal(t, "first", out[0].DonorName)
	assert.Equal(t, "second", out[1].DonorName)
	assert.Equal(t, "third", out[2].DonorName)
}

func TestApplyEmptyInput(t *testing.T) {
	assert.Empty(t, Apply(nil, Filters{FoodType: "veg", SortBy: SortLatest}, "", testNow))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	records := []models.Donation{
		donation("A", models.Veg, "10 meals", "x", 3*time.Hour, 60*time.Minute),
		donation("B", models.Veg, "25 meals", "x", 3*time.Hour, 5*time.Minute),
	}

	_ = Apply(records, Filters{SortBy: SortLatest}, "", testNow)
	assert.Equal(t, "A", records[0].DonorName)
	assert.Equal(t, "B", records[1].DonorName)
}

func TestLeadingInt(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"25 meals", 25},
		{"10 meals", 10},
		{"7", 7},
		{"  42 boxes", 42},
		{"a few trays", 0},
		{"", 0},
		{"meals 12", 0},
		{"003 portions", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LeadingInt(tt.input), "input %q", tt.input)
	}
}
