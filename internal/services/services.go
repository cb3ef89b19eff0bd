// Package services holds the social network's operations: identity, the
// friend graph, the feed, messaging and notification fan-out.
package services

import (
	"time"

	"github.com/anonto42/friendbook/backend/internal/auth"
	"github.com/anonto42/friendbook/backend/internal/realtime"
	"github.com/anonto42/friendbook/backend/internal/repositories"
	"github.com/google/uuid"
)

// Services is the set of operations exposed to handlers
type Services struct {
	Auth          *AuthService
	Users         *UserService
	Graph         *GraphService
	Feed          *FeedService
	Messages      *MessageService
	Notifications *NotificationService
}

type options struct {
	now        func() time.Time
	newID      func() string
	bcryptCost int
	firebase   IDTokenVerifier
}

type Option func(*options)

// WithClock replaces time.Now for every timestamp the services write
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator replaces uuid.NewString for entity ids
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithBcryptCost sets the password hashing cost
func WithBcryptCost(cost int) Option {
	return func(o *options) { o.bcryptCost = cost }
}

// WithFirebase enables FirebaseLogin through verifier
func WithFirebase(verifier IDTokenVerifier) Option {
	return func(o *options) { o.firebase = verifier }
}

// New wires the services over repos. publisher may be nil.
func New(repos *repositories.Set, tokens *auth.TokenManager, publisher realtime.Publisher, opts ...Option) *Services {
	o := options{now: time.Now, newID: uuid.NewString, bcryptCost: 10}
	for _, opt := range opts {
		opt(&o)
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}

	notifier := &Notifier{
		notifications: repos.Notifications,
		publisher:     publisher,
		now:           o.now,
		newID:         o.newID,
	}
	graph := &GraphService{
		users:       repos.Users,
		friendships: repos.Friendships,
		notifier:    notifier,
		publisher:   publisher,
		now:         o.now,
		newID:       o.newID,
	}
	return &Services{
		Auth: &AuthService{
			users:      repos.Users,
			tokens:     tokens,
			now:        o.now,
			newID:      o.newID,
			bcryptCost: o.bcryptCost,
			firebase:   o.firebase,
		},
		Users: &UserService{users: repos.Users},
		Graph: graph,
		Feed: &FeedService{
			posts:    repos.Posts,
			users:    repos.Users,
			graph:    graph,
			notifier: notifier,
			now:      o.now,
			newID:    o.newID,
		},
		Messages: &MessageService{
			messages:  repos.Messages,
			users:     repos.Users,
			publisher: publisher,
			now:       o.now,
			newID:     o.newID,
		},
		Notifications: &NotificationService{notifications: repos.Notifications},
	}
}

type noopPublisher struct{}

func (noopPublisher) Publish(string, realtime.Event) {}
