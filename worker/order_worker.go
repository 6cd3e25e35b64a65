package worker

import (
    "context"
    "fmt"
    "log"
    "time"

    "pawmart-storefront-api/database"
    "pawmart-storefront-api/queue"
    "pawmart-storefront-api/services/email"
)

// Worker drains the order queue in the background and sends
// confirmation emails once checkout has snapshotted an order.
type Worker struct {
    queue     *queue.Queue
    db        *database.Connection
    mailer    email.Sender
    shutdown  chan struct{}
    isRunning bool
}

func NewWorker(q *queue.Queue, db *database.Connection, mailer email.Sender) *Worker {
    return &Worker{
        queue:    q,
        db:       db,
        mailer:   mailer,
        shutdown: make(chan struct{}),
    }
}

// Start launches the worker goroutines plus one ticker goroutine that
// requeues delayed retries.
func (w *Worker) Start(concurrency int) {
    w.isRunning = true

    for i := 0; i < concurrency; i++ {
        go w.processJobs(i)
    }
    go w.pollDelayedJobs()

    log.Printf("Started %d worker goroutines", concurrency)
}

func (w *Worker) Stop() {
    if !w.isRunning {
        return
    }

    log.Println("Stopping worker...")
    close(w.shutdown)
    w.isRunning = false
}

func (w *Worker) pollDelayedJobs() {
    ticker := time.NewTicker(15 * time.Second)
    defer ticker.Stop()

    for {
        select {
        case <-w.shutdown:
            return
        case <-ticker.C:
            ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
            if err := w.queue.ProcessDelayedJobs(ctx); err != nil {
                log.Printf("Error processing delayed jobs: %v", err)
            }
            cancel()
        }
    }
}

func (w *Worker) processJobs(workerID int) {
    log.Printf("Worker %d starting", workerID)

    for {
        select {
        case <-w.shutdown:
            log.Printf("Worker %d shutting down", workerID)
            return
        default:
            ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
            job, err := w.queue.Dequeue(ctx, 5*time.Second)
            cancel()

            if err != nil {
                log.Printf("Worker %d: Error dequeuing job: %v", workerID, err)
                time.Sleep(time.Second)
                continue
            }

            if job == nil {
                time.Sleep(100 * time.Millisecond)
                continue
            }

            log.Printf("Worker %d processing job %s of type %s", workerID, job.ID, job.Type)

            if jobErr := w.processJob(job); jobErr != nil {
                log.Printf("Worker %d: Error processing job %s: %v", workerID, job.ID, jobErr)

                ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
                if failErr := w.queue.FailJob(ctx, job, jobErr); failErr != nil {
                    log.Printf("Worker %d: Error marking job %s as failed: %v", workerID, job.ID, failErr)
                }
                cancel()

                time.Sleep(time.Second)
                continue
            }

            ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
            if completeErr := w.queue.CompleteJob(ctx, job); completeErr != nil {
                log.Printf("Worker %d: Error marking job %s as complete: %v", workerID, job.ID, completeErr)
            }
            cancel()
        }
    }
}

func (w *Worker) processJob(job *queue.Job) error {
    switch job.Type {
    case queue.JobTypeOrderConfirmation:
        return w.processOrderConfirmation(job)
    default:
        return fmt.Errorf("unknown job type: %s", job.Type)
    }
}

func (w *Worker) processOrderConfirmation(job *queue.Job) error {
    orderID, _ := job.Data["order_id"].(string)
    to, _ := job.Data["email"].(string)
    name, _ := job.Data["name"].(string)
    total, _ := job.Data["total"].(float64)

    if orderID == "" || to == "" {
        return fmt.Errorf("order confirmation job %s missing order_id or email", job.ID)
    }

    body := email.OrderConfirmationBody(name, orderID, total)
    if err := w.mailer.SendEmail(to, "Your PawMart order "+orderID, body); err != nil {
        return fmt.Errorf("failed to send confirmation for order %s: %v", orderID, err)
    }

    if err := w.db.MarkOrderNotified(orderID); err != nil {
        // The mail went out; losing the flag is not worth a resend.
        log.Printf("Warning: %v", err)
    }

    return nil
}
