package perftests

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http/httptest"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"listing-bidder/internal/bidform"
	bidding "listing-bidder/internal/biddingService"
	repository "listing-bidder/internal/repository"
	"listing-bidder/internal/sender"
	"listing-bidder/internal/server"
	"listing-bidder/utils"

	"github.com/gin-gonic/gin"
)

// LoadScenario defines configurable load parameters
type LoadScenario struct {
	Name             string
	NumListings      int
	MaxPriceIncrease int
	Burst            bool // if true, no delay between bids
}

// OperationMetrics collects latencies safely
type OperationMetrics struct {
	mu        sync.Mutex
	latencies []time.Duration
}

func (om *OperationMetrics) Record(d time.Duration) {
	om.mu.Lock()
	om.latencies = append(om.latencies, d)
	om.mu.Unlock()
}

func (om *OperationMetrics) Stats() (min, max, avg, p95, p99 time.Duration) {
	om.mu.Lock()
	defer om.mu.Unlock()
	if len(om.latencies) == 0 {
		return
	}
	latencies := append([]time.Duration(nil), om.latencies...)
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })

	min = latencies[0]
	max = latencies[len(latencies)-1]

	var total time.Duration
	for _, d := range latencies {
		total += d
	}
	avg = total / time.Duration(len(latencies))
	p95 = latencies[int(0.95*float64(len(latencies)-1))]
	p99 = latencies[int(0.99*float64(len(latencies)-1))]
	return
}

// setupServer starts a listing server seeded with numListings open listings
func setupServer(b *testing.B, numListings int) *httptest.Server {
	gin.SetMode(gin.ReleaseMode)
	_ = utils.SetLogLevel("error")

	repo := repository.NewMemoryRepo()
	for i := 1; i <= numListings; i++ {
		repo.AddListing(newListing(i, fmt.Sprintf("listing_%d", i)))
	}
	srv := httptest.NewServer(server.SetupRouter(bidding.NewBiddingService(repo), server.NewCSRFStore()))
	b.Cleanup(srv.Close)
	return srv
}

// Benchmark_Load_BidForms drives the full client flow: each goroutine opens a
// listing page, binds its bid form and submits bids through it.
func Benchmark_Load_BidForms(b *testing.B) {
	scenarios := []LoadScenario{
		{"Low-Contention", 200, 50, false},
		{"High-Contention", 5, 20, false},
		{"Single-Listing", 1, 10, false},
		{"Peak-Burst", 50, 20, true},
	}

	for _, s := range scenarios {
		b.Run(s.Name, func(b *testing.B) {
			runParallelScenario(b, s)
		})
	}
}

func runParallelScenario(b *testing.B, s LoadScenario) {
	b.ReportAllocs()

	srv := setupServer(b, s.NumListings)
	ctx := context.Background()

	var totalOps, acceptedBids, rejectedBids, failedBids int64
	metrics := &OperationMetrics{}

	start := time.Now()

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

		client, err := sender.New(srv.URL, sender.WithDoer(srv.Client()))
		if err != nil {
			b.Errorf("new sender: %v", err)
			return
		}
		listingID := strconv.Itoa(rnd.Intn(s.NumListings) + 1)
		_, form, submitter, err := bidform.Open(ctx, client, listingID)
		if err != nil {
			b.Errorf("open listing %s: %v", listingID, err)
			return
		}

		price := 50
		for pb.Next() {
			price += rnd.Intn(s.MaxPriceIncrease) + 1
			form.SetPrice(strconv.Itoa(price))

			opStart := time.Now()
			err := submitter.PlaceBid(ctx)
			metrics.Record(time.Since(opStart))

			switch {
			case err == nil:
				atomic.AddInt64(&acceptedBids, 1)
			case isRejected(err):
				atomic.AddInt64(&rejectedBids, 1)
			default:
				atomic.AddInt64(&failedBids, 1)
			}
			atomic.AddInt64(&totalOps, 1)

			if !s.Burst {
				time.Sleep(time.Millisecond)
			}
		}
	})

	elapsed := time.Since(start)
	throughput := float64(totalOps) / elapsed.Seconds()
	min, max, avg, p95, p99 := metrics.Stats()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	b.Logf(
		"Scenario: %s | Listings: %d | Total Ops: %d | Accepted: %d | Rejected: %d | Failed: %d | Elapsed: %s | Throughput: %.2f ops/sec | Latency(us) min: %.2f avg: %.2f max: %.2f p95: %.2f p99: %.2f | Memory Alloc: %.2f MB",
		s.Name, s.NumListings, totalOps, acceptedBids, rejectedBids, failedBids, elapsed,
		throughput,
		float64(min.Microseconds()), float64(avg.Microseconds()), float64(max.Microseconds()),
		float64(p95.Microseconds()), float64(p99.Microseconds()),
		float64(mem.Alloc)/1024/1024,
	)

	if failedBids > 0 {
		b.Errorf("%d bids failed outside the field error path", failedBids)
	}
}

func isRejected(err error) bool {
	var rejected *bidform.RejectedError
	return errors.As(err, &rejected)
}
