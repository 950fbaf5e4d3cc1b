package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	fakeListen string
	fakeDelay  time.Duration
	fakeCount  int
)

var fakebackendCmd = &cobra.Command{
	Use:   "fakebackend",
	Short: "Run a local stand-in for the grading backend",
	Long: `Fakebackend serves the grade-result endpoint for a set of synthetic
jobs. Each job reports "pending" until its delay elapses, then
"completed". Unknown job IDs report "not_found". The job batch is
printed on startup in the format the watch command accepts via --jobs.`,
	RunE: runFakebackend,
}

func init() {
	fakebackendCmd.Flags().StringVar(&fakeListen, "listen", ":8000", "address to listen on")
	fakebackendCmd.Flags().DurationVar(&fakeDelay, "delay", 10*time.Second, "time until each job completes")
	fakebackendCmd.Flags().IntVar(&fakeCount, "count", 3, "number of synthetic jobs")
	rootCmd.AddCommand(fakebackendCmd)
}

type fakeJob struct {
	Name        string `json:"name"`
	SubmittedAt string `json:"submitted_at"`

	completeAt time.Time
}

// fakeBackend holds the synthetic job table behind the HTTP handlers.
type fakeBackend struct {
	mu   sync.Mutex
	jobs map[string]*fakeJob
}

func newFakeBackend(count int, delay time.Duration) *fakeBackend {
	fb := &fakeBackend{jobs: make(map[string]*fakeJob, count)}
	now := time.Now()
	for i := 0; i < count; i++ {
		fb.jobs[uuid.NewString()] = &fakeJob{
			Name:        fmt.Sprintf("assignment-%d.pdf", i+1),
			SubmittedAt: now.Format("15:04:05"),
			completeAt:  now.Add(delay),
		}
	}
	return fb
}

// batchJSON renders the job table in the shape the watch command expects.
func (fb *fakeBackend) batchJSON() (string, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()

	out := make(map[string]fakeJob, len(fb.jobs))
	for id, j := range fb.jobs {
		out[id] = *j
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (fb *fakeBackend) handleGradeResult(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("job_id")

	fb.mu.Lock()
	j, ok := fb.jobs[id]
	fb.mu.Unlock()

	result := "not_found"
	if ok {
		result = "pending"
		if time.Now().After(j.completeAt) {
			result = "completed"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": result})
}

// handleGradeAll mints one additional job per request, completing after
// the configured delay, and returns its ID.
func (fb *fakeBackend) handleGradeAll(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	now := time.Now()

	fb.mu.Lock()
	fb.jobs[id] = &fakeJob{
		Name:        fmt.Sprintf("assignment-%d.pdf", len(fb.jobs)+1),
		SubmittedAt: now.Format("15:04:05"),
		completeAt:  now.Add(fakeDelay),
	}
	fb.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"job_id": id})
}

func (fb *fakeBackend) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ai_grading/grade_result/{job_id}", fb.handleGradeResult)
	mux.HandleFunc("POST /ai_grading/grade_all", fb.handleGradeAll)
	return mux
}

func runFakebackend(cmd *cobra.Command, args []string) error {
	fb := newFakeBackend(fakeCount, fakeDelay)

	batch, err := fb.batchJSON()
	if err != nil {
		return fmt.Errorf("render batch: %w", err)
	}
	fmt.Printf("listening on %s, %d jobs complete in %s\n", fakeListen, fakeCount, fakeDelay)
	fmt.Printf("watch with: jobwatch watch --backend http://localhost%s --jobs '%s'\n", fakeListen, batch)

	srv := &http.Server{Addr: fakeListen, Handler: fb.routes()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
