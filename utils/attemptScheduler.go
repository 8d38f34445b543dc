package utils

import (
	"fmt"
	"log"
	"time"

	"elms/config"
	"elms/database"
	assessmentModels "elms/models/assessment"

	"github.com/robfig/cron/v3"
)

// Grace period added to a quiz time limit before an attempt counts as stale
const sweepGraceMinutes = 5

func logSweeper(message string) {
	log.Printf("[ATTEMPT-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartAttemptSweeper starts the cron job that marks stale in-progress
// attempts as abandoned. Disabled unless ATTEMPT_SWEEP_MINUTES > 0.
func StartAttemptSweeper() *cron.Cron {
	interval := config.AppConfig.AttemptSweepMinutes
	if interval <= 0 {
		return nil
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %dm", interval)
	if _, err := c.AddFunc(spec, sweepStaleAttempts); err != nil {
		logSweeper("Failed to schedule sweep: " + err.Error())
		return nil
	}

	c.Start()
	logSweeper("Scheduled stale-attempt sweep every " + spec[7:])
	return c
}

// sweepStaleAttempts abandons in-progress attempts on time-limited quizzes
// whose limit (plus grace) has elapsed since the attempt started
func sweepStaleAttempts() {
	db := database.Database.Db
	now := time.Now()

	var attempts []assessmentModels.QuizAttempt
	if err := db.Where("status = ?", assessmentModels.StatusInProgress).Find(&attempts).Error; err != nil {
		logSweeper("Error fetching in-progress attempts: " + err.Error())
		return
	}

	swept := 0
	for _, attempt := range attempts {
		var quiz assessmentModels.Quiz
		if err := db.First(&quiz, attempt.QuizID).Error; err != nil {
			continue
		}
		if quiz.TimeLimitMinutes == nil {
			continue
		}

		deadline := attempt.StartedAt.Add(time.Duration(*quiz.TimeLimitMinutes+sweepGraceMinutes) * time.Minute)
		if now.Before(deadline) {
			continue
		}

		attempt.Status = assessmentModels.StatusAbandoned
		if err := db.Save(&attempt).Error; err != nil {
			logSweeper(fmt.Sprintf("Error abandoning attempt %d: %v", attempt.ID, err))
			continue
		}
		swept++
	}

	if swept > 0 {
		logSweeper(fmt.Sprintf("Abandoned %d stale attempt(s)", swept))
	}
}
