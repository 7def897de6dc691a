package dashboard

import (
	"sync"
	"time"

	"github.com/octofit/dashboard/internal/editflow"
	"github.com/octofit/dashboard/internal/remotelist"
)

// TeamOption is one entry of the edit form's team dropdown.
type TeamOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// View is one mounted resource view. Its list is fetched exactly once, when the
// view is mounted. Editable views also carry the team list and the edit flow.
type View struct {
	ID        string
	Def       Definition
	List      *remotelist.List
	Teams     *remotelist.List
	Edit      *editflow.Flow
	MountedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
}

// Touch records activity on the view.
func (v *View) Touch(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if now.After(v.lastSeen) {
		v.lastSeen = now
	}
}

// LastSeen returns the last time the view was used.
func (v *View) LastSeen() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// TeamOptions lists the teams fetched for the edit form. It is empty until the
// team list is ready and stays empty if that fetch failed.
func (v *View) TeamOptions() []TeamOption {
	if v.Teams == nil {
		return nil
	}

	snap := v.Teams.Snapshot()
	if snap.Status != remotelist.StatusReady {
		return nil
	}

	opts := make([]TeamOption, 0, len(snap.Records))
	for _, rec := range snap.Records {
		opts = append(opts, TeamOption{ID: rec.ID(), Name: rec.String("name")})
	}
	return opts
}
