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

// LeaderboardEntry is one ranked row of the community leaderboard
type LeaderboardEntry struct {
	Name         string `json:"name"`
	MealsDonated int    `json:"mealsDonated"`
	MealsRescued int    `json:"mealsRescued"`
	ImpactScore  int    `json:"impactScore"`
	Rank         int    `json:"rank"`
	Badge        string `json:"badge"`
}

// GetLeaderboard ranks donors and rescuers over a time window.
// Impact score: 10 points per meal donated, 8 per meal rescued.
func GetLeaderboard(c *gin.Context) {
	window := c.DefaultQuery("window", "weekly")
	category := c.DefaultQuery("category", "overall")

	var since time.Time
	switch window {
	case "weekly":
		since = time.Now().AddDate(0, 0, -7)
	case "monthly":
		since = time.Now().AddDate(0, -1, 0)
	case "allTime":
		// zero time includes everything
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid window"})
		return
	}

	switch category {
	case "overall", "donors", "rescuers":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	records, err := donationRepo.ListSince(c.Request.Context(), since)
	if err != nil {
		config.Log.Errorw("Failed to retrieve donations for leaderboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve leaderboard"})
		return
	}

	entries := map[string]*LeaderboardEntry{}
	get := func(name string) *LeaderboardEntry {
		e, ok := entries[name]
		if !ok {
			e = &LeaderboardEntry{Name: name}
			entries[name] = e
		}
		return e
	}

	for _, d := range records {
		meals := browse.LeadingInt(d.Quantity)
		if !d.IsAnonymous {
			get(d.DonorName).MealsDonated += meals
		}
		// Rescues only count once the pickup is confirmed.
		if d.Status == models.Collected && d.ReservedBy != "" {
			get(d.ReservedBy).MealsRescued += meals
		}
	}

	ranked := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		e.ImpactScore = e.MealsDonated*10 + e.MealsRescued*8
		switch category {
		case "donors":
			if e.MealsDonated == 0 {
				continue
			}
		case "rescuers":
			if e.MealsRescued == 0 {
				continue
			}
		}
		ranked = append(ranked, *e)
	}

	sort.Slice(ranked, func(i, j int) bool {
		switch category {
		case "donors":
			return ranked[i].MealsDonated > ranked[j].MealsDonated
		case "rescuers":
			return ranked[i].MealsRescued > ranked[j].MealsRescued
		default:
			return ranked[i].ImpactScore > ranked[j].ImpactScore
		}
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].Badge = badgeForRank(i + 1)
	}

	c.JSON(http.StatusOK, gin.H{
		"window":      window,
		"category":    category,
		"leaderboard": ranked,
	})
}

func badgeForRank(rank int) string {
	switch rank {
	case 1:
		return "Food Hero"
	case 2:
		return "Rescue Champion"
	case 3:
		return "Impact Leader"
	default:
		return "Rising Star"
	}
}
