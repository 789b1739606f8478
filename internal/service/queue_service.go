package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
	"github.com/immxrtalbeast/karaoke_queue/internal/queue"
	"github.com/immxrtalbeast/karaoke_queue/internal/repository"
	"github.com/immxrtalbeast/karaoke_queue/lib/logger/sl"
)

var (
	ErrEmptyCustomerID = errors.New("customer id is required")
	ErrEmptyName       = errors.New("display name is required")
	ErrEmptyTitle      = errors.New("song title is required")
	ErrSlotNotFound    = errors.New("slot not found")
)

// QueueService owns the mutation operations over the request store and the
// derived play queue. Every write re-reads the full store, reprojects from
// scratch and broadcasts the result, so concurrent submissions from different
// parties converge without any cross-operation locking.
type QueueService struct {
	customers   repository.CustomerRepository
	log         *slog.Logger
	mu          sync.RWMutex
	subscribers map[string]*domain.Subscriber
}

func NewQueueService(customers repository.CustomerRepository, log *slog.Logger) *QueueService {
	if log == nil {
		log = slog.Default()
	}
	return &QueueService{
		customers:   customers,
		log:         log,
		subscribers: make(map[string]*domain.Subscriber),
	}
}

// SubmitSong appends a concrete request to the customer's lane. An empty
// VideoID is tolerated and still yields a ready request, matching sources
// that resolve the video after submission; only SubmitReservation creates
// waiting slots.
func (s *QueueService) SubmitSong(ctx context.Context, customerID, name string, song SongSubmission) (*domain.SongRequest, error) {
	const op = "service.queue.submitSong"
	log := s.log.With(slog.String("op", op), slog.String("customer_id", customerID))

	name = strings.TrimSpace(name)
	if err := validateSubmitter(customerID, name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(song.Title) == "" {
		return nil, ErrEmptyTitle
	}

	request := domain.NewSongRequest(song.VideoID, song.Title, song.CleanTitle, song.Artist, song.Thumbnail, song.Source, song.IsPriority)
	request.BeatOptions = song.BeatOptions

	if err := s.appendRequest(ctx, customerID, name, request); err != nil {
		log.Error("submit failed", sl.Err(err))
		return nil, err
	}

	log.Info("song submitted",
		"song_id", request.ID,
		"title", request.CleanTitle,
		"priority", request.IsPriority,
	)
	s.republish(ctx)
	return request, nil
}

func (s *QueueService) SubmitReservation(ctx context.Context, customerID, name string) (*domain.SongRequest, error) {
	const op = "service.queue.submitReservation"
	log := s.log.With(slog.String("op", op), slog.String("customer_id", customerID))

	name = strings.TrimSpace(name)
	if err := validateSubmitter(customerID, name); err != nil {
		return nil, err
	}

	request := domain.NewReservation()
	if err := s.appendRequest(ctx, customerID, name, request); err != nil {
		log.Error("reservation failed", sl.Err(err))
		return nil, err
	}

	log.Info("slot reserved", "slot_id", request.ID)
	s.republish(ctx)
	return request, nil
}

func (s *QueueService) FillReservation(ctx context.Context, customerID, slotID string, song SongSubmission) (*domain.SongRequest, error) {
	const op = "service.queue.fillReservation"
	log := s.log.With(
		slog.String("op", op),
		slog.String("customer_id", customerID),
		slog.String("slot_id", slotID),
	)

	if strings.TrimSpace(customerID) == "" {
		return nil, ErrEmptyCustomerID
	}
	if strings.TrimSpace(song.Title) == "" {
		return nil, ErrEmptyTitle
	}

	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrSlotNotFound
		}
		log.Error("load failed", sl.Err(err))
		return nil, err
	}

	slot := customer.FindSong(slotID)
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	switch slot.Status {
	case domain.SongStatusWaiting:
		// fall through to the fill below
	case domain.SongStatusReady:
		if slot.VideoID == song.VideoID {
			// retried fill with the same song: nothing to do
			return slot, nil
		}
		return nil, ErrSlotNotFound
	default:
		return nil, ErrSlotNotFound
	}

	slot.Fill(song.VideoID, song.Title, song.CleanTitle, song.Artist, song.Thumbnail, song.Source)
	slot.BeatOptions = song.BeatOptions

	if err := s.customers.Save(ctx, customer); err != nil {
		log.Error("save failed", sl.Err(err))
		return nil, err
	}

	log.Info("slot filled", "title", slot.CleanTitle)
	s.republish(ctx)
	return slot, nil
}

func (s *QueueService) Queue(ctx context.Context) ([]domain.QueueEntry, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, err
	}
	return queue.Project(queue.Snapshot{Customers: customers}), nil
}

func (s *QueueService) CustomerRequests(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, customerID)
}

func (s *QueueService) Subscribe(sub *domain.Subscriber) {
	s.mu.Lock()
	s.subscribers[sub.ID] = sub
	s.mu.Unlock()
	s.log.Info("subscriber joined", "subscriber_id", sub.ID)
}

func (s *QueueService) Unsubscribe(id string) {
	s.mu.Lock()
	sub, ok := s.subscribers[id]
	if ok {
		delete(s.subscribers, id)
	}
	s.mu.Unlock()

	// a broadcast may still hold a reference; Close serializes against its
	// EnqueueUpdate instead of closing the channel out from under it
	if ok {
		sub.Close()
	}
	s.log.Info("subscriber left", "subscriber_id", id)
}

// Republish recomputes the projection from the current store and pushes it to
// every subscriber. Used by the player surface after skips and completions.
func (s *QueueService) Republish(ctx context.Context) ([]domain.QueueEntry, error) {
	entries, err := s.Queue(ctx)
	if err != nil {
		return nil, err
	}
	s.broadcast(domain.NewQueueUpdate(entries))
	return entries, nil
}

// appendRequest runs the round-assignment rules and appends the request to
// the customer's record, creating the record on first contact. The latest
// submitted display name wins.
func (s *QueueService) appendRequest(ctx context.Context, customerID, name string, request *domain.SongRequest) error {
	customers, err := s.customers.List(ctx)
	if err != nil {
		return err
	}

	var customer *domain.Customer
	for _, c := range customers {
		if c.ID == customerID {
			customer = c
			break
		}
	}

	if customer == nil {
		// priority submissions never read the round state; the first normal
		// submission will bump StartRound through the rejoin rule
		startRound := 1
		if !request.IsPriority {
			startRound = queue.NextGlobalRound(customers)
		}
		customer = domain.NewCustomer(customerID, name, startRound)
	} else {
		customer.Name = name
		if !request.IsPriority {
			customer.StartRound = queue.JoinRound(customers, customer)
		}
	}

	customer.Songs = append(customer.Songs, request)
	return s.customers.Save(ctx, customer)
}

func (s *QueueService) republish(ctx context.Context) {
	entries, err := s.Republish(ctx)
	if err != nil {
		s.log.Error("republish failed", sl.Err(err))
		return
	}
	s.log.Debug("queue republished", "entries", len(entries))
}

func (s *QueueService) broadcast(update domain.QueueUpdate) {
	s.mu.RLock()
	subs := make([]*domain.Subscriber, 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.RUnlock()

	for _, sub := range subs {
		if !sub.EnqueueUpdate(update) {
			s.log.Debug("dropping queue update", slog.String("subscriber", sub.ID))
		}
	}
}

func validateSubmitter(customerID, name string) error {
	if strings.TrimSpace(customerID) == "" {
		return ErrEmptyCustomerID
	}
	if name == "" {
		return ErrEmptyName
	}
	return nil
}
