package coastline

// PriorityTable maps object class acronyms to an integer rank. Lower ranks win
// when geometrically coincident segments are collapsed and when stitching
// candidates tie on distance.
type PriorityTable map[string]int

// unrankedPriority is the sentinel rank for object classes absent from the table.
const unrankedPriority = 1000

// defaultPriorities orders boundary sources by trust: surveyed and engineered
// boundaries over coarse polygon-derived approximations.
//
// Berth, drydock and shoreline-construction geometry is surveyed at berthing
// scale; land-area and depth-area edges are compiled at chart scale and only
// approximate the true boundary.
var defaultPriorities = PriorityTable{
	"BERTHS": 1,  // Berth
	"DRYDOC": 2,  // Dry dock
	"FLODOC": 3,  // Floating dock
	"SLCONS": 4,  // Shoreline construction
	"PONTON": 5,  // Pontoon
	"MORFAC": 6,  // Mooring facility
	"COALNE": 7,  // Coastline
	"DEPCNT": 8,  // Depth contour (zero-depth)
	"BRIDGE": 9,  // Bridge
	"PYLONS": 10, // Pylon
	"CRANES": 11, // Crane
	"CONVYR": 12, // Conveyor
	"HRBARE": 13, // Harbour area
	"HRBFAC": 14, // Harbour facility
	"DOCARE": 15, // Dock area
	"CAUSWY": 16, // Causeway
	"FNCLNE": 17, // Fence/wall
	"RAILWY": 18, // Railway
	"DMPGRD": 19, // Dumping ground
	"LNDARE": 20, // Land area
	"DEPARE": 21, // Depth area
}

// DefaultPriorities returns a copy of the built-in source priority table.
//
// Callers may adjust the copy and pass it via EngineOptions to override
// individual ranks without affecting other engines.
func DefaultPriorities() PriorityTable {
	out := make(PriorityTable, len(defaultPriorities))
	for k, v := range defaultPriorities {
		out[k] = v
	}
	return out
}

// Rank returns the priority rank for an object class.
//
// Unranked classes get a sentinel worst rank so any ranked source beats them.
func (t PriorityTable) Rank(objectClass string) int {
	if rank, ok := t[objectClass]; ok {
		return rank
	}
	return unrankedPriority
}
