package postprocess

import (
	"strings"
	"testing"

	"github.com/hilli/ingredientparser/token"
)

func tok(text string) token.Token { return token.Token{Text: text, FeatText: text} }

func marginalsOf(n int, v float64) []float64 {
	m := make([]float64, n)
	for i := range m {
		m[i] = v
	}
	return m
}

func TestProcessSimpleQuantityUnitName(t *testing.T) {
	tokens := []token.Token{tok("2"), tok("cups"), tok("flour")}
	tokens[1].Flags |= token.FlagSingularized
	tokens[1].Text = "cup"
	labels := []token.Label{token.QTY, token.UNIT, token.BNameTok}

	result := Process("2 cups flour", tokens, labels, marginalsOf(3, 0.9), DefaultOptions)

	if len(result.Amounts) != 1 {
		t.Fatalf("expected 1 amount, got %d", len(result.Amounts))
	}
	if result.Amounts[0].Unit != "cup" {
		t.Errorf("unit = %q, want cup", result.Amounts[0].Unit)
	}
	if result.Amounts[0].Quantity.Value != 2 {
		t.Errorf("quantity = %v, want 2", result.Amounts[0].Quantity.Value)
	}
	if len(result.Names) != 1 || result.Names[0].Text != "flour" {
		t.Fatalf("names = %+v, want [flour]", result.Names)
	}
}

func TestProcessSizableUnitPattern(t *testing.T) {
	tokens := []token.Token{tok("2"), tok("14"), tok("ounce"), tok("cans"), tok("coconut"), tok("milk")}
	labels := []token.Label{
		token.QTY, token.QTY, token.UNIT, token.UNIT, token.BNameTok, token.INameTok,
	}

	result := Process("2 14 ounce cans coconut milk", tokens, labels, marginalsOf(6, 0.8), DefaultOptions)

	if len(result.Amounts) != 2 {
		t.Fatalf("expected 2 amounts, got %+v", result.Amounts)
	}
	if result.Amounts[0].Quantity.Value != 2 {
		t.Errorf("first amount quantity = %v, want 2", result.Amounts[0].Quantity.Value)
	}
	if result.Amounts[1].Quantity.Value != 14 || result.Amounts[1].Unit != "ounce" {
		t.Errorf("second amount = %+v, want 14 ounce", result.Amounts[1])
	}
	if !result.Amounts[1].Flags.Has(Singular) {
		t.Errorf("second amount should carry Singular flag")
	}
	if len(result.Names) != 1 || result.Names[0].Text != "coconut milk" {
		t.Fatalf("names = %+v, want [coconut milk]", result.Names)
	}
}

func TestProcessDiscardsIsolatedStopWordComment(t *testing.T) {
	tokens := []token.Token{tok("1"), tok("cup"), tok("sugar"), tok(","), tok("of")}
	labels := []token.Label{token.QTY, token.UNIT, token.BNameTok, token.PUNC, token.COMMENT}

	result := Process("1 cup sugar, of", tokens, labels, marginalsOf(5, 0.7), DefaultOptions)

	if result.Comment != nil {
		t.Errorf("expected isolated stop word comment to be discarded, got %+v", result.Comment)
	}
}

func TestProcessPropagatesPreparedIngredient(t *testing.T) {
	// "100 g sifted flour": the preparation sits between the amount and
	// the name, so the amount describes the prepared ingredient.
	tokens := []token.Token{tok("100"), tok("g"), tok("sifted"), tok("flour")}
	labels := []token.Label{token.QTY, token.UNIT, token.PREP, token.BNameTok}

	result := Process("100 g sifted flour", tokens, labels, marginalsOf(4, 0.8), DefaultOptions)

	if len(result.Amounts) != 1 {
		t.Fatalf("expected 1 amount, got %+v", result.Amounts)
	}
	if !result.Amounts[0].Flags.Has(PreparedIngredient) {
		t.Errorf("expected PreparedIngredient flag to propagate to amount")
	}
	if result.Preparation == nil || result.Preparation.Text != "sifted" {
		t.Fatalf("preparation = %+v, want sifted", result.Preparation)
	}
}

func TestProcessPrepAfterNameDoesNotMarkPrepared(t *testing.T) {
	tokens := []token.Token{tok("1"), tok("cup"), tok("flour"), tok(","), tok("sifted")}
	labels := []token.Label{token.QTY, token.UNIT, token.BNameTok, token.PUNC, token.PREP}

	result := Process("1 cup flour, sifted", tokens, labels, marginalsOf(5, 0.8), DefaultOptions)

	if len(result.Amounts) != 1 {
		t.Fatalf("expected 1 amount, got %+v", result.Amounts)
	}
	if result.Amounts[0].Flags.Has(PreparedIngredient) {
		t.Errorf("preparation after the name should not mark the amount prepared")
	}
	if result.Preparation == nil || result.Preparation.Text != "sifted" {
		t.Fatalf("preparation = %+v, want sifted", result.Preparation)
	}
}

func TestProcessStringUnitsOption(t *testing.T) {
	tokens := []token.Token{tok("2"), tok("cups"), tok("flour")}
	tokens[1].Text = "cup"
	tokens[1].Flags |= token.FlagSingularized
	labels := []token.Label{token.QTY, token.UNIT, token.BNameTok}

	opts := Options{StringUnits: true}
	result := Process("2 cups flour", tokens, labels, marginalsOf(3, 0.9), opts)

	if len(result.Amounts) != 1 {
		t.Fatalf("expected 1 amount, got %+v", result.Amounts)
	}
	if result.Amounts[0].Unit != "cups" {
		t.Errorf("unit = %q, want the surface form cups, pluralized to agree with the quantity", result.Amounts[0].Unit)
	}
}

func TestRemoveInvalidIndicesKeepsBalancedBrackets(t *testing.T) {
	tokens := []token.Token{tok("("), tok("chopped"), tok(")")}

	got := removeInvalidIndices([]int{0, 1, 2}, tokens)
	if len(got) != 3 {
		t.Errorf("removeInvalidIndices = %v, want the balanced bracket pair preserved", got)
	}
}

func TestRemoveInvalidIndicesDropsDanglingBracket(t *testing.T) {
	tokens := []token.Token{tok("finely"), tok("chopped"), tok(")")}

	got := removeInvalidIndices([]int{0, 1, 2}, tokens)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("removeInvalidIndices = %v, want the dangling close bracket dropped", got)
	}
}

func TestFixPunctuation(t *testing.T) {
	got := fixPunctuation("peeled and sliced into 5-10 mm ( 1/4-1/2 in ) coins")
	want := "peeled and sliced into 5-10 mm (1/4-1/2 in) coins"
	if got != want {
		t.Errorf("fixPunctuation = %q, want %q", got, want)
	}
}

func TestDistributeRelatedFlagsGroupsByRelatedToPrevious(t *testing.T) {
	amounts := []IngredientAmount{
		{Flags: Approximate},
		{Flags: RelatedToPrevious},
		{Flags: Singular},
		{Flags: RelatedToPrevious | PreparedIngredient},
		{Flags: RelatedToPrevious},
	}

	distributeRelatedFlags(amounts)

	for i, a := range amounts[:2] {
		if !a.Flags.Has(Approximate) {
			t.Errorf("amounts[%d] = %+v, want Approximate propagated across the first group", i, a)
		}
	}
	for i, a := range amounts[2:] {
		if !a.Flags.Has(Singular) || !a.Flags.Has(PreparedIngredient) {
			t.Errorf("amounts[%d] = %+v, want Singular and PreparedIngredient propagated across the second group", i+2, a)
		}
	}
	if amounts[0].Flags.Has(Singular) || amounts[1].Flags.Has(Singular) {
		t.Errorf("flags should not cross group boundaries: amounts = %+v", amounts)
	}
}

func TestProcessPropagatesApproximateAcrossRelatedAmount(t *testing.T) {
	// "about 2 lb / 1 kg flour": the second amount is opened immediately
	// after '/' and inherits APPROXIMATE from the first even though
	// nothing marks it approximate directly.
	tokens := []token.Token{
		tok("about"), tok("2"), tok("lb"), tok("/"), tok("1"), tok("kg"), tok("flour"),
	}
	labels := []token.Label{
		token.PUNC, token.QTY, token.UNIT, token.PUNC, token.QTY, token.UNIT, token.BNameTok,
	}

	result := Process("about 2 lb / 1 kg flour", tokens, labels, marginalsOf(7, 0.8), DefaultOptions)

	if len(result.Amounts) != 2 {
		t.Fatalf("expected 2 amounts, got %+v", result.Amounts)
	}
	if !result.Amounts[0].Flags.Has(Approximate) {
		t.Errorf("first amount = %+v, want Approximate", result.Amounts[0])
	}
	if !result.Amounts[1].Flags.Has(RelatedToPrevious) {
		t.Errorf("second amount = %+v, want RelatedToPrevious", result.Amounts[1])
	}
	if !result.Amounts[1].Flags.Has(Approximate) {
		t.Errorf("second amount = %+v, want Approximate propagated from the related group", result.Amounts[1])
	}
}

func TestProcessDozenMultipliesPrecedingQuantity(t *testing.T) {
	tokens := []token.Token{tok("2"), tok("dozen"), tok("eggs")}
	labels := []token.Label{token.QTY, token.UNIT, token.BNameTok}

	result := Process("2 dozen eggs", tokens, labels, marginalsOf(3, 0.9), DefaultOptions)

	if len(result.Amounts) != 1 {
		t.Fatalf("expected 1 amount, got %+v", result.Amounts)
	}
	if result.Amounts[0].Quantity.Value != 24 {
		t.Errorf("quantity = %v, want 24", result.Amounts[0].Quantity.Value)
	}
}

func TestProcessSizableUnitPatternConsumesLeadingApprox(t *testing.T) {
	tokens := []token.Token{
		tok("about"), tok("2"), tok("14"), tok("ounce"), tok("cans"), tok("coconut"), tok("milk"),
	}
	labels := []token.Label{
		token.COMMENT, token.QTY, token.QTY, token.UNIT, token.UNIT, token.BNameTok, token.INameTok,
	}

	result := Process("about 2 14 ounce cans coconut milk", tokens, labels, marginalsOf(7, 0.8), DefaultOptions)

	if !result.Amounts[0].Flags.Has(Approximate) {
		t.Errorf("first amount should carry Approximate flag")
	}
	if result.Comment != nil {
		t.Errorf("expected leading 'about' to be consumed, not resurface as a comment, got %+v", result.Comment)
	}
}

func TestProcessJoinsSeparatedCommentRunsWithComma(t *testing.T) {
	// "1 cup chilled sugar, divided": two COMMENT runs separated by the
	// name are joined with ", " in the comment field.
	tokens := []token.Token{tok("1"), tok("cup"), tok("chilled"), tok("sugar"), tok(","), tok("divided")}
	labels := []token.Label{token.QTY, token.UNIT, token.COMMENT, token.BNameTok, token.PUNC, token.COMMENT}

	result := Process("1 cup chilled sugar, divided", tokens, labels, marginalsOf(6, 0.8), DefaultOptions)

	if result.Comment == nil {
		t.Fatal("expected a comment field")
	}
	if result.Comment.Text != "chilled, divided" {
		t.Errorf("comment = %q, want %q", result.Comment.Text, "chilled, divided")
	}
	if result.Comment.StartingIndex != 2 {
		t.Errorf("comment starting index = %d, want 2", result.Comment.StartingIndex)
	}
}

func TestProcessCompositePlusThroughRepeatedName(t *testing.T) {
	// "1/2 cup sugar plus 1 1/2 tablespoons sugar": the repeated name
	// between the two amounts must not break the composite match, and the
	// name is deduplicated.
	tokens := []token.Token{tok("#1$2"), tok("cup"), tok("sugar"), tok("plus"), tok("1#1$2"), tok("tablespoon"), tok("sugar")}
	labels := []token.Label{token.QTY, token.UNIT, token.BNameTok, token.COMMENT, token.QTY, token.UNIT, token.BNameTok}

	result := Process("1/2 cup sugar plus 1 1/2 tablespoons sugar", tokens, labels, marginalsOf(7, 0.9), DefaultOptions)

	if len(result.CompositeAmounts) != 1 {
		t.Fatalf("expected 1 composite amount, got %+v", result.CompositeAmounts)
	}
	comp := result.CompositeAmounts[0]
	if comp.Join != " plus " {
		t.Errorf("join = %q, want %q", comp.Join, " plus ")
	}
	if len(comp.Amounts) != 2 || comp.Amounts[0].Quantity.Value != 0.5 || comp.Amounts[1].Quantity.Value != 1.5 {
		t.Errorf("composite amounts = %+v, want 0.5 cup and 1.5 tablespoon", comp.Amounts)
	}
	if len(result.Names) != 1 || result.Names[0].Text != "sugar" {
		t.Errorf("names = %+v, want the single deduplicated name sugar", result.Names)
	}
}

func TestComposeNamesVariantsShareOneRoot(t *testing.T) {
	// "2 cups beef or vegetable stock"
	labels := []token.Label{
		token.QTY, token.UNIT, token.NameVar, token.NameSep, token.NameVar, token.BNameTok,
	}
	nameIndices := []int{2, 3, 4, 5}
	texts := []string{"2", "cup", "beef", "or", "vegetable", "stock"}

	groups := groupNameLabels(nameIndices, labels)
	constructed := composeNames(groups, labels)

	var names []string
	for _, g := range constructed {
		var words []string
		for _, idx := range g {
			words = append(words, texts[idx])
		}
		names = append(names, strings.Join(words, " "))
	}

	want := []string{"beef stock", "vegetable stock"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
