package certify

import (
	"context"
	"log/slog"
	"time"

	"github.com/harnoor-dev/event-cert-api/common/metrics"
)

// StartAutoSendJob starts the hourly background job that generates and
// delivers certificates for ended events flagged for auto-send.
func StartAutoSendJob(service *Service) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred in certificate auto-send job", "panic", r)
			}
		}()

		// Run immediately on startup to catch events that ended while
		// the process was down.
		slog.Info("Certificate auto-send job: Initial run starting")
		RunAutoSend(service)

		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			slog.Info("Certificate auto-send job: Scheduled run starting")
			RunAutoSend(service)
		}
	}()

	slog.Info("Certificate auto-send job started successfully")
}

// RunAutoSend processes every ended event with auto-send enabled whose
// certificates have not gone out yet. Events are handled sequentially; a
// failure on one event never stops the rest.
func RunAutoSend(service *Service) {
	startTime := time.Now()
	metrics.SchedulerRuns.Inc()

	events, err := service.Events.ListAutoSendPending(time.Now())
	if err != nil {
		slog.Error("RunAutoSend: Failed to query pending events", "error", err)
		return
	}

	if len(events) == 0 {
		slog.Info("RunAutoSend: No events pending certificate generation", "duration", time.Since(startTime))
		return
	}

	slog.Info("RunAutoSend: Found events to process", "count", len(events))

	for _, event := range events {
		// Take the claim before doing any work so a second instance
		// cannot double-send the same event.
		claimed, err := service.Events.ClaimForProcessing(event.ID, time.Now())
		if err != nil {
			slog.Error("RunAutoSend: Claim failed", "error", err, "eventId", event.ID)
			continue
		}
		if !claimed {
			slog.Info("RunAutoSend: Event already claimed, skipping", "eventId", event.ID)
			continue
		}

		result, err := service.GenerateForEvent(context.Background(), event.ID, Options{
			SendEmail: true,
			SavePDF:   true,
		})
		if err != nil {
			slog.Error("RunAutoSend: Event processing failed", "error", err, "eventId", event.ID, "title", event.Title)
			continue
		}

		successCount := 0
		for _, r := range result.Results {
			if r.Status == "success" {
				successCount++
			}
		}
		slog.Info("RunAutoSend: Event completed",
			"eventId", event.ID,
			"title", event.Title,
			"total", result.Total,
			"success", successCount)
	}

	slog.Info("RunAutoSend: Completed", "duration", time.Since(startTime))
}
