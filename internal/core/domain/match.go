package domain

// Compatibility axes in scoring order.
const (
	AxisVarna       = "Varna"
	AxisVashya      = "Vashya"
	AxisTara        = "Tara"
	AxisYoni        = "Yoni"
	AxisGrahaMaitri = "Graha Maitri"
	AxisGana        = "Gana"
	AxisBhakoot     = "Bhakoot"
	AxisNadi        = "Nadi"
)

// MatchMaxScore is the sum of all axis maxima.
const MatchMaxScore = 36.0

// MatchPassThreshold is the minimum total considered compatible.
const MatchPassThreshold = 18.0

// KutaScore is the points awarded on one compatibility axis.
type KutaScore struct {
	Axis  string  `json:"axis" yaml:"axis"`
	Score float64 `json:"score" yaml:"score"`
	Max   float64 `json:"max" yaml:"max"`

	// Symmetric is true when swapping the two charts cannot change the score.
	Symmetric bool `json:"symmetric" yaml:"symmetric"`

	// Detail names the lookup keys that produced the score.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// MatchResult is the Ashta Kuta comparison of two charts.
// Total is always the exact sum of the axis scores.
type MatchResult struct {
	ChartA    *Chart      `json:"-" yaml:"-"`
	ChartB    *Chart      `json:"-" yaml:"-"`
	Scores    []KutaScore `json:"scores" yaml:"scores"`
	Total     float64     `json:"total" yaml:"total"`
	Max       float64     `json:"max" yaml:"max"`
	Threshold float64     `json:"threshold" yaml:"threshold"`
}

// Passed reports whether the total reaches the threshold.
func (r *MatchResult) Passed() bool {
	return r.Total >= r.Threshold
}

// Score returns the score of a named axis.
func (r *MatchResult) Score(axis string) (KutaScore, bool) {
	for _, s := range r.Scores {
		if s.Axis == axis {
			return s, true
		}
	}
	return KutaScore{}, false
}

// Varna is the temperament class of a Moon sign, ranked 1 (lowest) to 4.
type Varna int

// Varna classes.
const (
	VarnaShudra Varna = iota + 1
	VarnaVaishya
	VarnaKshatriya
	VarnaBrahmin
)

var varnaBySign = [SignCount]Varna{
	VarnaKshatriya, VarnaVaishya, VarnaShudra, VarnaBrahmin,
	VarnaKshatriya, VarnaVaishya, VarnaShudra, VarnaBrahmin,
	VarnaKshatriya, VarnaVaishya, VarnaShudra, VarnaBrahmin,
}

var varnaNames = [...]string{"", "Shudra", "Vaishya", "Kshatriya", "Brahmin"}

// String returns the class name.
func (v Varna) String() string {
	if v < VarnaShudra || v > VarnaBrahmin {
		return unknownDescription
	}
	return varnaNames[v]
}

// VarnaOf returns the varna of a sign.
func VarnaOf(s Sign) (Varna, bool) {
	if !s.IsValid() {
		return 0, false
	}
	return varnaBySign[s], true
}

// Vashya is the control group of a Moon sign.
type Vashya int

// Vashya groups.
const (
	VashyaChatushpada Vashya = iota
	VashyaManava
	VashyaJalachara
	VashyaVanachara
	VashyaKeeta
)

var vashyaBySign = [SignCount]Vashya{
	VashyaChatushpada, VashyaChatushpada, VashyaManava, VashyaJalachara,
	VashyaVanachara, VashyaManava, VashyaManava, VashyaKeeta,
	VashyaChatushpada, VashyaChatushpada, VashyaManava, VashyaJalachara,
}

var vashyaNames = [...]string{"Chatushpada", "Manava", "Jalachara", "Vanachara", "Keeta"}

// String returns the group name.
func (v Vashya) String() string {
	if v < 0 || int(v) >= len(vashyaNames) {
		return unknownDescription
	}
	return vashyaNames[v]
}

// vashyaPoints is symmetric: same group 2, otherwise 1.
var vashyaPoints = [5][5]float64{
	{2, 1, 1, 1, 1},
	{1, 2, 1, 1, 1},
	{1, 1, 2, 1, 1},
	{1, 1, 1, 2, 1},
	{1, 1, 1, 1, 2},
}

// VashyaOf returns the vashya group of a sign.
func VashyaOf(s Sign) (Vashya, bool) {
	if !s.IsValid() {
		return 0, false
	}
	return vashyaBySign[s], true
}

// VashyaPoints looks up the vashya score of two groups.
func VashyaPoints(a, b Vashya) (float64, bool) {
	if a < 0 || int(a) >= len(vashyaPoints) || b < 0 || int(b) >= len(vashyaPoints) {
		return 0, false
	}
	return vashyaPoints[a][b], true
}

// Yoni is the animal symbol of a nakshatra.
type Yoni int

// The fourteen yonis.
const (
	YoniHorse Yoni = iota
	YoniElephant
	YoniSheep
	YoniSerpent
	YoniDog
	YoniCat
	YoniRat
	YoniCow
	YoniBuffalo
	YoniTiger
	YoniHare
	YoniMonkey
	YoniMongoose
	YoniLion
)

var yoniNames = [...]string{
	"Horse", "Elephant", "Sheep", "Serpent", "Dog", "Cat", "Rat",
	"Cow", "Buffalo", "Tiger", "Hare", "Monkey", "Mongoose", "Lion",
}

// String returns the animal name.
func (y Yoni) String() string {
	if y < 0 || int(y) >= len(yoniNames) {
		return unknownDescription
	}
	return yoniNames[y]
}

// YoniOf returns the yoni of a nakshatra. The fourteen animals repeat
// in order around the nakshatra ring.
func YoniOf(n Nakshatra) (Yoni, bool) {
	if !n.IsValid() {
		return 0, false
	}
	return Yoni(int(n) % len(yoniNames)), true
}

// YoniPoints scores two yonis: same animal 4, otherwise 2.
func YoniPoints(a, b Yoni) (float64, bool) {
	if a < 0 || int(a) >= len(yoniNames) || b < 0 || int(b) >= len(yoniNames) {
		return 0, false
	}
	if a == b {
		return 4, true
	}
	return 2, true
}

// Gana is the temperament of a nakshatra.
type Gana int

// Ganas.
const (
	GanaDeva Gana = iota
	GanaManushya
	GanaRakshasa
)

var ganaNames = [...]string{"Deva", "Manushya", "Rakshasa"}

// String returns the gana name.
func (g Gana) String() string {
	if g < 0 || int(g) >= len(ganaNames) {
		return unknownDescription
	}
	return ganaNames[g]
}

// ganaPoints is symmetric.
var ganaPoints = [3][3]float64{
	{6, 5, 0},
	{5, 6, 1},
	{0, 1, 6},
}

// GanaOf returns the gana of a nakshatra. Ganas cycle Deva, Manushya,
// Rakshasa from Ashwini.
func GanaOf(n Nakshatra) (Gana, bool) {
	if !n.IsValid() {
		return 0, false
	}
	return Gana(int(n) % len(ganaNames)), true
}

// GanaPoints looks up the gana score of two ganas.
func GanaPoints(a, b Gana) (float64, bool) {
	if a < 0 || int(a) >= len(ganaPoints) || b < 0 || int(b) >= len(ganaPoints) {
		return 0, false
	}
	return ganaPoints[a][b], true
}

// Nadi is the constitution channel of a nakshatra.
type Nadi int

// Nadis.
const (
	NadiAdi Nadi = iota
	NadiMadhya
	NadiAntya
)

var nadiNames = [...]string{"Adi", "Madhya", "Antya"}

// String returns the nadi name.
func (n Nadi) String() string {
	if n < 0 || int(n) >= len(nadiNames) {
		return unknownDescription
	}
	return nadiNames[n]
}

// NadiOf returns the nadi of a nakshatra. Nadis cycle Adi, Madhya, Antya
// from Ashwini.
func NadiOf(n Nakshatra) (Nadi, bool) {
	if !n.IsValid() {
		return 0, false
	}
	return Nadi(int(n) % len(nadiNames)), true
}

// Relation is the natural relationship of one planet towards another.
type Relation int

// Natural relationships.
const (
	RelationEnemy Relation = iota
	RelationNeutral
	RelationFriend
)

// naturalFriends and naturalNeutrals list each sign lord's view of the
// others; any remaining lord is an enemy.
var naturalFriends = map[Body][]Body{
	Sun:     {Moon, Mars, Jupiter},
	Moon:    {Sun, Mercury},
	Mars:    {Sun, Moon, Jupiter},
	Mercury: {Sun, Venus},
	Jupiter: {Sun, Moon, Mars},
	Venus:   {Mercury, Saturn},
	Saturn:  {Mercury, Venus},
}

var naturalNeutrals = map[Body][]Body{
	Sun:     {Mercury},
	Moon:    {Mars, Jupiter, Venus, Saturn},
	Mars:    {Venus, Saturn},
	Mercury: {Mars, Jupiter, Saturn},
	Jupiter: {Saturn},
	Venus:   {Mars, Jupiter},
	Saturn:  {Jupiter},
}

// NaturalRelation returns how planet a regards planet b. Only the seven
// sign lords have relationships; nodes are not in the table.
func NaturalRelation(a, b Body) (Relation, bool) {
	friends, ok := naturalFriends[a]
	if !ok {
		return 0, false
	}
	if _, ok := naturalFriends[b]; !ok {
		return 0, false
	}
	for _, f := range friends {
		if f == b {
			return RelationFriend, true
		}
	}
	for _, n := range naturalNeutrals[a] {
		if n == b {
			return RelationNeutral, true
		}
	}
	return RelationEnemy, true
}

// MaitriPoints scores two sign lords: the same lord or mutual friends 5,
// mutual neutrals 3, anything else 1.
func MaitriPoints(a, b Body) (float64, bool) {
	ab, ok := NaturalRelation(a, b)
	if !ok {
		return 0, false
	}
	ba, ok := NaturalRelation(b, a)
	if !ok {
		return 0, false
	}
	switch {
	case a == b, ab == RelationFriend && ba == RelationFriend:
		return 5, true
	case ab == RelationNeutral && ba == RelationNeutral:
		return 3, true
	default:
		return 1, true
	}
}

// TaraOf counts the tara (1..9) of nakshatra to as seen from nakshatra from.
func TaraOf(from, to Nakshatra) int {
	count := ((int(to)-int(from))%NakshatraCount+NakshatraCount)%NakshatraCount + 1
	return (count-1)%9 + 1
}

// IsInauspiciousTara reports Vipat (3), Pratyak (5) and the closing
// ninth tara of each cycle.
func IsInauspiciousTara(tara int) bool {
	return tara == 3 || tara == 5 || tara == 9
}

// IsBhakootDosha reports the inauspicious sign distances 2/12 and 6/8.
func IsBhakootDosha(distance int) bool {
	switch distance {
	case 2, 12, 6, 8:
		return true
	default:
		return false
	}
}
