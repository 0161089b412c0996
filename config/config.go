// Package config loads Controller options from layered sources: built-in
// defaults, an optional .env-style overlay file, then explicit overrides
// (as set by CLI flags). Later sources win, matching the override order the
// corpus's own command-line tooling uses.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rw1nkler/vtr-verilog-to-routing/anneal"
	"github.com/rw1nkler/vtr-verilog-to-routing/placererr"
)

// EnvKeys are the recognized .env-style keys, one per Options field that
// can be overridden by a file.
const (
	KeyAlgorithm          = "PLACE_ALGORITHM"
	KeyPlaceCostExp       = "PLACE_COST_EXP"
	KeyTimingTradeoff     = "TIMING_TRADEOFF"
	KeyRlimEscapeFraction = "RLIM_ESCAPE_FRACTION"
	KeyTDPlaceExpFirst    = "TD_PLACE_EXP_FIRST"
	KeyTDPlaceExpLast     = "TD_PLACE_EXP_LAST"
	KeyRecomputeCritIter  = "RECOMPUTE_CRIT_ITER"
	KeyInnerLoopDivider   = "INNER_LOOP_RECOMPUTE_DIVIDER"
	KeyQuenchDivider      = "QUENCH_RECOMPUTE_DIVIDER"
	KeyEffortScaling      = "EFFORT_SCALING"
	KeyScheduleType       = "SCHEDULE_TYPE"
	KeyInitT              = "SCHEDULE_INIT_T"
	KeyAlphaT             = "SCHEDULE_ALPHA_T"
	KeyExitT              = "SCHEDULE_EXIT_T"
	KeyAlphaMin           = "SCHEDULE_ALPHA_MIN"
	KeyAlphaMax           = "SCHEDULE_ALPHA_MAX"
	KeyAlphaDecay         = "SCHEDULE_ALPHA_DECAY"
	KeySuccessTarget      = "SCHEDULE_SUCCESS_TARGET"
	KeySuccessMin         = "SCHEDULE_SUCCESS_MIN"
	KeyInnerNum           = "SCHEDULE_INNER_NUM"
	KeySeed               = "SEED"
)

// Load builds an Options value starting from anneal.Default(), overlaying
// any key present in envPath (if non-empty and readable -- a missing file
// is not an error, matching an optional overlay), and finally overlaying
// any non-nil field in overrides. A recognized key (PLACE_ALGORITHM,
// SCHEDULE_TYPE, EFFORT_SCALING) whose value does not parse to one of its
// enum's spellings raises CONFIG_INVALID immediately, rather than silently
// falling back to whatever default or prior value was in place. It then
// calls Validate before returning, so every other CONFIG_INVALID condition
// is also raised at load time rather than deep inside the annealing loop.
func Load(envPath string, overrides Overrides) (anneal.Options, error) {
	opts := anneal.Default()

	if envPath != "" {
		env, err := godotenv.Read(envPath)
		if err == nil {
			if err := applyEnv(&opts, env); err != nil {
				return opts, err
			}
		}
	}

	if err := overrides.ApplyTo(&opts); err != nil {
		return opts, err
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Overrides holds the subset of Options a caller (typically CLI flags) may
// want to force regardless of defaults or the .env overlay. A nil pointer
// field means "do not override".
type Overrides struct {
	Algorithm      *string
	PlaceCostExp   *float64
	TimingTradeoff *float64
	Seed           *int64
	ScheduleType   *string
	InitT          *float64
}

// ApplyTo overlays any set field of o onto opts. It returns a
// placererr.ConfigInvalid error, leaving opts partially overlaid, if
// Algorithm or ScheduleType is set but does not parse.
func (o Overrides) ApplyTo(opts *anneal.Options) error {
	if o.Algorithm != nil {
		a, ok := parseAlgorithm(*o.Algorithm)
		if !ok {
			return unrecognizedEnum(KeyAlgorithm, *o.Algorithm)
		}
		opts.Algorithm = a
	}
	if o.PlaceCostExp != nil {
		opts.PlaceCostExp = *o.PlaceCostExp
	}
	if o.TimingTradeoff != nil {
		opts.TimingTradeoff = *o.TimingTradeoff
	}
	if o.Seed != nil {
		opts.Seed = *o.Seed
	}
	if o.ScheduleType != nil {
		t, ok := parseScheduleType(*o.ScheduleType)
		if !ok {
			return unrecognizedEnum(KeyScheduleType, *o.ScheduleType)
		}
		opts.Schedule.Type = t
	}
	if o.InitT != nil {
		opts.Schedule.InitT = *o.InitT
	}
	return nil
}

// applyEnv overlays every recognized key present in env onto opts. It
// returns a placererr.ConfigInvalid error, leaving opts partially
// overlaid, the moment PLACE_ALGORITHM, EFFORT_SCALING, or SCHEDULE_TYPE
// is present but does not parse to one of its enum's spellings.
func applyEnv(opts *anneal.Options, env map[string]string) error {
	if v, ok := env[KeyAlgorithm]; ok {
		a, ok := parseAlgorithm(v)
		if !ok {
			return unrecognizedEnum(KeyAlgorithm, v)
		}
		opts.Algorithm = a
	}
	setFloat(env, KeyPlaceCostExp, &opts.PlaceCostExp)
	setFloat(env, KeyTimingTradeoff, &opts.TimingTradeoff)
	setFloat(env, KeyRlimEscapeFraction, &opts.RlimEscapeFraction)
	setFloat(env, KeyTDPlaceExpFirst, &opts.TDPlaceExpFirst)
	setFloat(env, KeyTDPlaceExpLast, &opts.TDPlaceExpLast)
	setInt(env, KeyRecomputeCritIter, &opts.RecomputeCritIter)
	setInt(env, KeyInnerLoopDivider, &opts.InnerLoopRecomputeDivider)
	setInt(env, KeyQuenchDivider, &opts.QuenchRecomputeDivider)

	if v, ok := env[KeyEffortScaling]; ok {
		e, ok := parseEffortScaling(v)
		if !ok {
			return unrecognizedEnum(KeyEffortScaling, v)
		}
		opts.EffortScaling = e
	}
	if v, ok := env[KeyScheduleType]; ok {
		t, ok := parseScheduleType(v)
		if !ok {
			return unrecognizedEnum(KeyScheduleType, v)
		}
		opts.Schedule.Type = t
	}
	setFloat(env, KeyInitT, &opts.Schedule.InitT)
	setFloat(env, KeyAlphaT, &opts.Schedule.AlphaT)
	setFloat(env, KeyExitT, &opts.Schedule.ExitT)
	setFloat(env, KeyAlphaMin, &opts.Schedule.AlphaMin)
	setFloat(env, KeyAlphaMax, &opts.Schedule.AlphaMax)
	setFloat(env, KeyAlphaDecay, &opts.Schedule.AlphaDecay)
	setFloat(env, KeySuccessTarget, &opts.Schedule.SuccessTarget)
	setFloat(env, KeySuccessMin, &opts.Schedule.SuccessMin)
	setFloat(env, KeyInnerNum, &opts.Schedule.InnerNum)

	if v, ok := env[KeySeed]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			opts.Seed = n
		}
	}
	return nil
}

// unrecognizedEnum builds the CONFIG_INVALID error for a key whose value
// did not match any of its enum's recognized spellings.
func unrecognizedEnum(key, value string) error {
	return placererr.New(placererr.ConfigInvalid, fmt.Sprintf("unrecognized value %q for %s", value, key))
}

func setFloat(env map[string]string, key string, dst *float64) {
	if v, ok := env[key]; ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setInt(env map[string]string, key string, dst *int) {
	if v, ok := env[key]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func parseAlgorithm(v string) (anneal.Algorithm, bool) {
	switch strings.ToUpper(v) {
	case "BOUNDING_BOX_PLACE":
		return anneal.BoundingBoxPlace, true
	case "PATH_TIMING_DRIVEN_PLACE":
		return anneal.PathTimingDrivenPlace, true
	default:
		return 0, false
	}
}

func parseEffortScaling(v string) (anneal.EffortScaling, bool) {
	switch strings.ToUpper(v) {
	case "CIRCUIT":
		return anneal.Circuit, true
	case "DEVICE_CIRCUIT":
		return anneal.DeviceCircuit, true
	default:
		return 0, false
	}
}

func parseScheduleType(v string) (anneal.ScheduleType, bool) {
	switch strings.ToUpper(v) {
	case "USER":
		return anneal.User, true
	case "AUTO":
		return anneal.Auto, true
	case "DUSTY":
		return anneal.Dusty, true
	default:
		return 0, false
	}
}

// MustValidateKind reports whether err is a placererr.Error of the
// CONFIG_INVALID kind, the only fatal kind Load itself can raise.
func MustValidateKind(err error) bool {
	perr, ok := err.(*placererr.Error)
	return ok && perr.Kind == placererr.ConfigInvalid
}
