package jobs

import (
	"log"

	"github.com/Antzgech/makeda_quest/services"
)

// LogFinalistDigest writes a daily operational snapshot of the finalist set.
// Rankings themselves are never cached; this is a log line for the ops
// channel, not a source of truth.
func LogFinalistDigest() {
	log.Println("Running job: LogFinalistDigest...")

	finalists, err := services.FinalistSet()
	if err != nil {
		log.Printf("Error computing finalist digest: %v", err)
		return
	}

	perLevel := make(map[int]int)
	for _, finalist := range finalists {
		perLevel[finalist.Level]++
	}

	log.Printf("🏅 Finalist digest: %d total, per level %v", len(finalists), perLevel)
}
