package rlapi

import (
	"strconv"
	"strings"
)

type Platform string

const (
	Steam Platform = "steam"
	PS4   Platform = "ps4"
	Xbox  Platform = "xboxone"
	Epic  Platform = "epic"
)

var platformAliases = map[string]Platform{
	"steam": Steam, "ps4": PS4, "ps": PS4, "psn": PS4,
	"xboxone": Xbox, "xbox": Xbox, "xbl": Xbox, "epic": Epic,
}

// ParsePlatform accepts the canonical names plus the short aliases used in chat commands.
func ParsePlatform(s string) (Platform, bool) {
	p, ok := platformAliases[strings.ToLower(strings.TrimSpace(s))]
	return p, ok
}

type PlaylistKey int

const (
	Duel         PlaylistKey = 10
	Doubles      PlaylistKey = 11
	SoloStandard PlaylistKey = 12
	Standard     PlaylistKey = 13
	Hoops        PlaylistKey = 27
	Rumble       PlaylistKey = 28
	Dropshot     PlaylistKey = 29
	Snowday      PlaylistKey = 30
	Tournaments  PlaylistKey = 34
)

var playlistNames = map[PlaylistKey]string{
	Duel:         "duel",
	Doubles:      "doubles",
	SoloStandard: "solo_standard",
	Standard:     "standard",
	Hoops:        "hoops",
	Rumble:       "rumble",
	Dropshot:     "dropshot",
	Snowday:      "snowday",
	Tournaments:  "tournaments",
}

func (k PlaylistKey) String() string {
	if name, ok := playlistNames[k]; ok {
		return name
	}
	return strconv.Itoa(int(k))
}

var playlistAbbrs = map[string]PlaylistKey{
	"1": Duel,
	"2": Doubles,
	"s": SoloStandard,
	"3": Standard,
	"h": Hoops,
	"r": Rumble,
	"d": Dropshot,
	"n": Snowday,
	"t": Tournaments,
}

// ParsePlaylistAbbr resolves the one-character playlist abbreviation used by
// chat format tokens and the seeding CLI.
func ParsePlaylistAbbr(abbr string) (PlaylistKey, bool) {
	k, ok := playlistAbbrs[strings.ToLower(strings.TrimSpace(abbr))]
	return k, ok
}

// PlaylistKeyFromInt reports whether v is one of the known playlist keys.
func PlaylistKeyFromInt(v int) (PlaylistKey, bool) {
	k := PlaylistKey(v)
	_, ok := playlistNames[k]
	return k, ok
}

// PlaylistID identifies a playlist either by a known PlaylistKey or by the raw
// id the API sent when the key is not recognised. It is comparable and used as
// a map key.
type PlaylistID struct {
	value int
	known bool
}

func KnownPlaylist(k PlaylistKey) PlaylistID {
	return PlaylistID{value: int(k), known: true}
}

func RawPlaylist(v int) PlaylistID {
	return PlaylistID{value: v}
}

// ResolvePlaylistID tries the known keys first and falls back to a raw id.
func ResolvePlaylistID(v int) PlaylistID {
	if k, ok := PlaylistKeyFromInt(v); ok {
		return KnownPlaylist(k)
	}
	return RawPlaylist(v)
}

func (id PlaylistID) Key() (PlaylistKey, bool) {
	return PlaylistKey(id.value), id.known
}

func (id PlaylistID) Int() int {
	return id.value
}

func (id PlaylistID) IsKnown() bool {
	return id.known
}

func (id PlaylistID) String() string {
	if id.known {
		return PlaylistKey(id.value).String()
	}
	return strconv.Itoa(id.value)
}

// MarshalText lets PlaylistID be used as a JSON object key.
func (id PlaylistID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}
