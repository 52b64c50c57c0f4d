package controllers

import (
	"net/http"
	"sort"
	"time"

	"mealbridge-be/browse"
	"mealbridge-be/config"
	"mealbridge-be/models"

	"github.com/gin-gonic/gin"
)

// GetDonationAnalytics returns the dashboard overview: totals, donations by
// meal type, last-7-days activity, and top donors
func GetDonationAnalytics(c *gin.Context) {
	records, err := donationRepo.List(c.Request.Context())
	if err != nil {
		config.Log.Errorw("Failed to retrieve donations for analytics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	byMealType := map[models.MealType]int{}
	var totalDonations, activeDonations, mealsRescued int
	for _, d := range records {
		totalDonations++
		byMealType[d.MealType]++
		switch d.Status {
		case models.Available, models.Reserved:
			activeDonations++
		case models.Collected:
			mealsRescued += browse.LeadingInt(d.Quantity)
		}
	}

	donationsByMealType := make([]gin.H, 0, len(byMealType))
	for _, mealType := range []models.MealType{models.Breakfast, models.Lunch, models.Dinner, models.Snacks} {
		donationsByMealType = append(donationsByMealType, gin.H{
			"name":  mealType,
			"value": byMealType[mealType],
		})
	}

	// Daily counts for the trailing week.
	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		count := 0
		for _, d := range records {
			if !d.CreatedAt.Before(date) && d.CreatedAt.Before(nextDate) {
				count++
			}
		}

		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	type DonorTotals struct {
		Name      string `json:"name"`
		Donations int    `json:"donations"`
		Meals     int    `json:"meals"`
	}

	totals := map[string]*DonorTotals{}
	for _, d := range records {
		if d.IsAnonymous {
			continue
		}
		t, ok := totals[d.DonorName]
		if !ok {
			t = &DonorTotals{Name: d.DonorName}
			totals[d.DonorName] = t
		}
		t.Donations++
		t.Meals += browse.LeadingInt(d.Quantity)
	}

	topDonors := make([]DonorTotals, 0, len(totals))
	for _, t := range totals {
		topDonors = append(topDonors, *t)
	}
	sort.Slice(topDonors, func(i, j int) bool {
		return topDonors[i].Meals > topDonors[j].Meals
	})
	if len(topDonors) > 5 {
		topDonors = topDonors[:5]
	}

	reservations, err := donationRepo.ListReservations(c.Request.Context())
	if err != nil {
		config.Log.Errorw("Failed to count reservations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalDonations":      totalDonations,
		"activeDonations":     activeDonations,
		"totalReservations":   len(reservations),
		"mealsRescued":        mealsRescued,
		"donationsByMealType": donationsByMealType,
		"last7Days":           last7Days,
		"topDonors":           topDonors,
	})
}
