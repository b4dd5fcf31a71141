package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"hackfest_backend/internal/app/service"
	"hackfest_backend/internal/domain/model"
	"hackfest_backend/internal/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CertificateWorker consumes certificate jobs from the redis queue and issues
// certificates for the team named in each job. A SetNX lock keeps rendering
// to one job at a time even with multiple server instances.
type CertificateWorker struct {
	rdb         *redis.Client
	certService *service.CertificateService
}

func NewCertificateWorker(rdb *redis.Client, certService *service.CertificateService) *CertificateWorker {
	return &CertificateWorker{rdb: rdb, certService: certService}
}

func (w *CertificateWorker) Start(ctx context.Context) {
	log.Println("Certificate worker started, listening to queue:", config.AppConfig.CertificateQueueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Certificate worker stopping...")
			return
		default:
			result, err := w.rdb.BRPop(ctx, 0*time.Second, config.AppConfig.CertificateQueueName).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					log.Printf("Worker BRPop exiting or timed out: %v", err)
					time.Sleep(1 * time.Second)
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", config.AppConfig.CertificateQueueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// result is an array: [queueName, value]
			if len(result) < 2 || result[1] == "" {
				log.Println("WARN: BRPop returned empty payload.")
				continue
			}
			w.processJobWithLock(ctx, result[1])
		}
	}
}

func (w *CertificateWorker) processJobWithLock(ctx context.Context, payload string) {
	lockValue := uuid.NewString()
	lockTTL := time.Duration(config.AppConfig.CertificateLockTTLSeconds) * time.Second

	ok, err := w.rdb.SetNX(ctx, config.AppConfig.CertificateLockKey, lockValue, lockTTL).Result()
	if err != nil {
		log.Printf("ERROR: Failed to attempt lock acquisition: %v", err)
		w.requeueJob(ctx, payload)
		return
	}
	if !ok {
		log.Printf("INFO: Could not acquire certificate lock, another worker is busy. Re-queueing.")
		w.requeueJob(ctx, payload)
		return
	}

	defer func() {
		// Release lock only if we still hold it (check value)
		script := redis.NewScript(`
            if redis.call("get", KEYS[1]) == ARGV[1] then
                return redis.call("del", KEYS[1])
            else
                return 0
            end
        `)
		deleted, err := script.Run(ctx, w.rdb, []string{config.AppConfig.CertificateLockKey}, lockValue).Result()
		if err != nil {
			log.Printf("ERROR: Failed to release certificate lock: %v", err)
		} else if deleted.(int64) != 1 {
			log.Printf("WARN: Did not release certificate lock; it might have expired or been taken by another.")
		}
	}()

	var job model.CertificateJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		log.Printf("ERROR: Malformed certificate job payload %q: %v", payload, err)
		return
	}

	// Rendering failures are logged inside the service and never bubble up to
	// the submission save that triggered the job.
	if err := w.certService.IssueForTeam(ctx, job.TeamID); err != nil {
		log.Printf("ERROR: Certificate issuance for team %s failed: %v", job.TeamID, err)
	}
}

func (w *CertificateWorker) requeueJob(ctx context.Context, payload string) {
	if err := w.rdb.RPush(ctx, config.AppConfig.CertificateQueueName, payload).Err(); err != nil {
		log.Printf("ERROR: Failed to re-queue certificate job: %v", err)
	} else {
		log.Printf("INFO: Certificate job re-queued.")
	}
}
