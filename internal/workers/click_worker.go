package workers

import (
	"log"

	"github.com/dondigital/storefront/internal/models"
	"github.com/dondigital/storefront/internal/services"
)

// StartClickWorkers launches a pool of goroutines persisting click events
// off the request path. Each worker inserts the click row and then bumps the
// owning affiliator's counter atomically in the store. Failures are logged
// and never surfaced: the caller has already been told the click was
// tracked.
func StartClickWorkers(workerCount int, clickEvents <-chan models.ClickEvent, referralService *services.ReferralService) {
	log.Printf("Starting %d click worker(s)...", workerCount)

	for i := 0; i < workerCount; i++ {
		go clickWorker(clickEvents, referralService)
	}
}

// clickWorker drains the channel until it is closed.
func clickWorker(clickEvents <-chan models.ClickEvent, referralService *services.ReferralService) {
	for event := range clickEvents {
		if err := referralService.RecordClick(event); err != nil {
			log.Printf("ERROR: failed to record click for code %s: %v", event.ReferralCode, err)
			continue
		}
		log.Printf("Click recorded for referral code %s", event.ReferralCode)
	}
}
