// Package postprocess converts (tokens, labels, marginals) produced by
// the sequence labeler into a ParsedIngredient: quantity normalization,
// amount extraction, text-field construction, and NAME sub-grammar
// splitting.
package postprocess

// QuantityKind tags which variant of the quantity union a Quantity holds.
type QuantityKind int

const (
	// QuantityScalar is a single decimal value.
	QuantityScalar QuantityKind = iota
	// QuantityRange is a (min, max) decimal pair.
	QuantityRange
	// QuantityRaw is a quantity that could not be parsed to a number and
	// is kept as the original string (a NonFatalParseAnomaly, not an
	// error: the caller still gets a usable ParsedIngredient).
	QuantityRaw
)

// Quantity is the tagged-union representation of a resolved QTY value.
type Quantity struct {
	Kind QuantityKind
	// Value holds the scalar value when Kind == QuantityScalar, or the
	// minimum of a range when Kind == QuantityRange.
	Value float64
	// Max holds the maximum of a range when Kind == QuantityRange. For a
	// scalar quantity, Max == Value.
	Max float64
	// Raw holds the original string when Kind == QuantityRaw.
	Raw string
}

// Flag is a bitset of boolean properties of an IngredientAmount.
type Flag uint8

const (
	Approximate Flag = 1 << iota
	Singular
	Range
	Multiplier
	PreparedIngredient
	// RelatedToPrevious marks an amount opened immediately after '(',
	// '/', or '[' in the fallback pattern: such amounts propagate
	// Approximate/Singular/PreparedIngredient from the group they belong
	// to rather than being judged independently.
	RelatedToPrevious
)

// Has reports whether all bits in mask are set.
func (f Flag) Has(mask Flag) bool { return f&mask == mask }

// IngredientAmount is a single parsed quantity-unit pair.
type IngredientAmount struct {
	Quantity      Quantity
	Unit          string
	Text          string
	Confidence    float64
	StartingIndex int
	Flags         Flag
}

// CompositeIngredientAmount is more than one IngredientAmount that
// combine to describe a single total quantity, e.g. "1 lb 2 oz".
type CompositeIngredientAmount struct {
	Amounts       []IngredientAmount
	Join          string
	Subtractive   bool
	Text          string
	Confidence    float64
	StartingIndex int
}

// IngredientText is a parsed free-text field (name, size, preparation,
// comment, or purpose).
type IngredientText struct {
	Text          string
	Confidence    float64
	StartingIndex int
}

// FoundationFood is a candidate FDC catalog match for a parsed name.
type FoundationFood struct {
	Text       string
	Confidence float64
	FDCID      int
	Category   string
	DataType   string
	// NameIndex is the index into ParsedIngredient.Names this match was
	// resolved from.
	NameIndex int
}

// ParsedIngredient is the fully structured result of parsing one
// ingredient sentence.
type ParsedIngredient struct {
	Names             []IngredientText
	Size              *IngredientText
	Amounts           []IngredientAmount
	CompositeAmounts  []CompositeIngredientAmount
	Preparation       *IngredientText
	Comment           *IngredientText
	Purpose           *IngredientText
	FoundationFoods   []FoundationFood
	Sentence          string
}
