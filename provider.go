package video_fetcher

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"

	"github.com/alanbriolat/video-fetcher/generic"
)

var (
	ErrDuplicateProvider = errors.New("duplicate provider name")
	ErrInvalidProvider   = errors.New("invalid provider")
	ErrNoMatch           = errors.New("no provider matched the input")
)

var (
	PriorityHighest int16 = math.MinInt16
	PriorityDefault int16 = 0
	PriorityLowest  int16 = math.MaxInt16
)

// Kind is the classification of a raw input string.
type Kind int

const (
	KindInvalid Kind = iota
	KindSingleVideo
	KindPlaylist
)

func (k Kind) String() string {
	switch k {
	case KindSingleVideo:
		return "video"
	case KindPlaylist:
		return "playlist"
	default:
		return "invalid"
	}
}

// A Target is what a Provider extracts from an input it recognises.
type Target struct {
	Kind Kind
	// ID is the video or playlist identifier.
	ID string
	// URL is the canonical URL for ID.
	URL string
}

type MatchFunc = func(string) (*Target, error)

// A Provider recognises inputs of one shape, e.g. playlist URLs of one platform.
type Provider struct {
	Name  string
	Match MatchFunc
	// Priority of the matcher, lower (including negative) means matching earlier.
	Priority int16
}

func (p Provider) WithPriority(priority int16) Provider {
	p.Priority = priority
	return p
}

// A Match is the result of a Provider successfully matching an input.
type Match struct {
	ProviderName string
	Target
}

// A ProviderRegistry is a collection of Provider instances which can be used to classify inputs.
type ProviderRegistry struct {
	providers   []*Provider
	providerMap map[string]*Provider
}

// Add registers a Provider. Provider.Name and Provider.Match must be set, and Provider.Name must be unique within
// the ProviderRegistry.
func (r *ProviderRegistry) Add(p Provider) error {
	if r.providerMap == nil {
		r.providerMap = make(map[string]*Provider)
	}
	if p.Name == "" || p.Match == nil {
		return ErrInvalidProvider
	}
	if _, ok := r.providerMap[p.Name]; ok {
		return ErrDuplicateProvider
	}
	r.providerMap[p.Name] = &p
	r.providers = append(r.providers, r.providerMap[p.Name])
	r.sortByPriority()
	return nil
}

// List returns the names of registered providers in priority order.
func (r *ProviderRegistry) List() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name)
	}
	return names
}

// Match an input against each Provider in priority order. If nothing matches, the error aggregates every
// provider's reason.
func (r *ProviderRegistry) Match(s string) (*Match, error) {
	var result error
	for _, p := range r.providers {
		if target, err := p.Match(s); target != nil && err == nil {
			return &Match{ProviderName: p.Name, Target: *target}, nil
		} else if err != nil {
			result = multierror.Append(result, multierror.Prefix(err, fmt.Sprintf("[%v]", p.Name)))
		}
	}
	if result == nil {
		return nil, ErrNoMatch
	}
	return nil, multierror.Append(ErrNoMatch, result)
}

// Classify returns the Kind of the first matching provider, or KindInvalid.
func (r *ProviderRegistry) Classify(s string) Kind {
	if match, err := r.Match(s); err == nil {
		return match.Kind
	}
	return KindInvalid
}

// MustAdd wraps Add but panics if there is an error.
func (r *ProviderRegistry) MustAdd(p Provider) {
	generic.Unwrap_(r.Add(p))
}

func (r *ProviderRegistry) sortByPriority() {
	sort.SliceStable(r.providers, func(i, j int) bool {
		return r.providers[i].Priority < r.providers[j].Priority
	})
}

var DefaultProviderRegistry ProviderRegistry
