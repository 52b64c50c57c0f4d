package controllers

import (
	"mealbridge-be/countdown"
	"mealbridge-be/geo"
	"mealbridge-be/handover"
	"mealbridge-be/repository"
)

var (
	donationRepo     repository.DonationRepository
	notificationRepo repository.NotificationRepository
	handovers        *handover.Manager
	locator          geo.Locator
	watcher          *countdown.Watcher
)

// Setup wires the controllers to their collaborators. Called once from main
// (and from handler tests) before any route is served.
func Setup(d repository.DonationRepository, n repository.NotificationRepository, m *handover.Manager, l geo.Locator) {
	donationRepo = d
	notificationRepo = n
	handovers = m
	locator = l
	watcher = countdown.NewWatcher()
}
