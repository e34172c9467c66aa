// Package bank is the client and location resolver for the bank branch API.
//
// Cascade resolves state → district → city → center into a branch record.
// Each level's options depend on the level above, so selecting a level
// clears every selection and option list beneath it before the next fetch is
// issued. Requests carry a per-level generation; a response is applied only
// if no newer request for the same level has been issued since.
package bank

import "context"

// Level identifies which list or record a request resolves.
type Level int

const (
	LevelStates Level = iota
	LevelDistricts
	LevelCities
	LevelCenters
	LevelBranch
	levelCount
)

func (l Level) String() string {
	switch l {
	case LevelStates:
		return "states"
	case LevelDistricts:
		return "districts"
	case LevelCities:
		return "cities"
	case LevelCenters:
		return "centers"
	case LevelBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Request is a snapshot of everything needed to run one fetch.
// It never reads live selection state, so a fetch always uses the exact
// (state, district, city) it was issued for.
type Request struct {
	Level    Level
	State    string
	District string
	City     string
	Center   string
	IFSC     string // set only for direct lookups
	Gen      uint64
}

// Response is the outcome of executing a Request.
type Response struct {
	Request Request
	Names   []string
	Centers []Center
	Branch  *Branch
	Err     error
}

// Cascade holds the selections, option lists and the latest branch record.
type Cascade struct {
	States    []string
	Districts []string
	Cities    []string
	Centers   []Center
	Branch    *Branch

	State    string
	District string
	City     string

	gen     [levelCount]uint64
	pending [levelCount]bool
}

// NewCascade returns an empty cascade.
func NewCascade() *Cascade {
	return &Cascade{}
}

func (c *Cascade) issue(r Request) Request {
	c.gen[r.Level]++
	c.pending[r.Level] = true
	r.Gen = c.gen[r.Level]
	return r
}

// invalidate drops pending work and options for every level from l down.
// Bumping the generation makes in-flight responses for those levels stale.
func (c *Cascade) invalidate(from Level) {
	for l := from; l <= LevelCenters; l++ {
		c.gen[l]++
		c.pending[l] = false
	}
	if from <= LevelDistricts {
		c.Districts = nil
	}
	if from <= LevelCities {
		c.Cities = nil
	}
	if from <= LevelCenters {
		c.Centers = nil
	}
}

// Reset clears every selection, list and the branch record. Generations keep
// counting so responses issued before the reset are stale afterwards.
func (c *Cascade) Reset() {
	for l := range c.gen {
		c.gen[l]++
		c.pending[l] = false
	}
	c.States, c.Districts, c.Cities, c.Centers = nil, nil, nil, nil
	c.Branch = nil
	c.State, c.District, c.City = "", "", ""
}

// LoadStates issues the initial request for the state list.
func (c *Cascade) LoadStates() Request {
	return c.issue(Request{Level: LevelStates})
}

// SelectState sets the state and clears district, city and every list below.
// Returns false (and issues nothing) when state is blank.
func (c *Cascade) SelectState(state string) (Request, bool) {
	c.State = state
	c.District = ""
	c.City = ""
	c.invalidate(LevelDistricts)
	if state == "" {
		return Request{}, false
	}
	return c.issue(Request{Level: LevelDistricts, State: state}), true
}

// SelectDistrict sets the district and clears the city and lists below.
func (c *Cascade) SelectDistrict(district string) (Request, bool) {
	c.District = district
	c.City = ""
	c.invalidate(LevelCities)
	if c.State == "" || district == "" {
		return Request{}, false
	}
	return c.issue(Request{Level: LevelCities, State: c.State, District: district}), true
}

// SelectCity sets the city and clears the center list.
func (c *Cascade) SelectCity(city string) (Request, bool) {
	c.City = city
	c.invalidate(LevelCenters)
	if c.State == "" || c.District == "" || city == "" {
		return Request{}, false
	}
	return c.issue(Request{Level: LevelCenters, State: c.State, District: c.District, City: city}), true
}

// SelectCenter requests the branch record at the fully resolved location.
func (c *Cascade) SelectCenter(center Center) Request {
	return c.issue(Request{
		Level:    LevelBranch,
		State:    c.State,
		District: c.District,
		City:     c.City,
		Center:   center.Name,
	})
}

// SearchIFSC requests a branch directly by code, bypassing the cascade.
// It shares the branch generation with SelectCenter so the newest lookup
// wins. Returns false when the code is blank.
func (c *Cascade) SearchIFSC(code string) (Request, bool) {
	code = NormalizeIFSC(code)
	if code == "" {
		return Request{}, false
	}
	return c.issue(Request{Level: LevelBranch, IFSC: code}), true
}

// Pending reports whether a request for level l is in flight.
func (c *Cascade) Pending(l Level) bool {
	if l < 0 || l >= levelCount {
		return false
	}
	return c.pending[l]
}

// Current reports whether r is still the newest request for its level.
func (c *Cascade) Current(r Request) bool {
	return r.Level >= 0 && r.Level < levelCount && r.Gen == c.gen[r.Level]
}

// Apply stores a response if it is current and reports whether it was.
// A failed response clears the pending marker and leaves prior display
// state unchanged.
func (c *Cascade) Apply(resp Response) bool {
	req := resp.Request
	if !c.Current(req) {
		return false
	}
	c.pending[req.Level] = false
	if resp.Err != nil {
		return true
	}
	switch req.Level {
	case LevelStates:
		c.States = resp.Names
	case LevelDistricts:
		c.Districts = resp.Names
	case LevelCities:
		c.Cities = resp.Names
	case LevelCenters:
		c.Centers = resp.Centers
	case LevelBranch:
		if resp.Branch != nil {
			c.Branch = resp.Branch
		}
	}
	return true
}

// Source is the set of lookups a Request can resolve to. *Client implements it.
type Source interface {
	States(ctx context.Context) ([]string, error)
	Districts(ctx context.Context, state string) ([]string, error)
	Cities(ctx context.Context, state, district string) ([]string, error)
	Centers(ctx context.Context, state, district, city string) ([]Center, error)
	BranchAt(ctx context.Context, state, district, city, center string) (*Branch, error)
	ByIFSC(ctx context.Context, code string) (*Branch, error)
}

var _ Source = (*Client)(nil)

// Execute runs r against client. Errors are carried in the Response.
func Execute(ctx context.Context, client Source, r Request) Response {
	resp := Response{Request: r}
	switch r.Level {
	case LevelStates:
		resp.Names, resp.Err = client.States(ctx)
	case LevelDistricts:
		resp.Names, resp.Err = client.Districts(ctx, r.State)
	case LevelCities:
		resp.Names, resp.Err = client.Cities(ctx, r.State, r.District)
	case LevelCenters:
		resp.Centers, resp.Err = client.Centers(ctx, r.State, r.District, r.City)
	case LevelBranch:
		if r.IFSC != "" {
			resp.Branch, resp.Err = client.ByIFSC(ctx, r.IFSC)
		} else {
			resp.Branch, resp.Err = client.BranchAt(ctx, r.State, r.District, r.City, r.Center)
		}
	}
	return resp
}
