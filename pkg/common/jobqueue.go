package common

import "sync"

type Job func() error

const jobQueueCapacity = 128

// JobQueue runs jobs one at a time, in the order they were enqueued, on a single background goroutine.
type JobQueue struct {
	jobsChannel chan Job
	stopChannel chan struct{}
	waitGroup   sync.WaitGroup
	stopOnce    sync.Once
	logger      Logger
}

func NewJobQueue(logger Logger) *JobQueue {
	worker := &JobQueue{
		jobsChannel: make(chan Job, jobQueueCapacity),
		stopChannel: make(chan struct{}),
		logger:      logger,
	}
	worker.waitGroup.Add(1)
	go worker.run()
	return worker
}

// Enqueue never blocks: if the queue is full, the job is dropped and false is returned.
func (j *JobQueue) Enqueue(job Job) bool {
	select {
	case j.jobsChannel <- job:
		return true
	default:
		j.logger.WithFields(Fields{"capacity": jobQueueCapacity}).Log("job queue is full, job dropped")
		return false
	}
}

// Stop waits for the job in progress (if any) and stops the worker. Jobs still waiting in the queue are dropped.
// Calling Stop more than once is a no-op.
func (j *JobQueue) Stop() {
	j.stopOnce.Do(func() {
		close(j.stopChannel)
	})
	j.waitGroup.Wait()
}

func (j *JobQueue) run() {
	defer j.waitGroup.Done()
	for {
		select {
		case job := <-j.jobsChannel:
			err := job()
			if err != nil {
				j.logger.Error(err, "failed to process a job")
			}
		case <-j.stopChannel:
			return
		}
	}
}
