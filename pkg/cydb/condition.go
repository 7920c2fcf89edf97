package cydb

// Comparison renders "left op right", with any of the three parts
// omitted from the output when nil/empty — used so a caller can build
// up a comparison incrementally (e.g. set Left, decide Op and Right
// later) without a separate builder type.
type Comparison struct {
	Left     Expression
	Operator string
	Right    Expression
}

func (*Comparison) Returns() bool { return true }

// Cmp builds a standard binary comparison.
func Cmp(left Expression, op string, right Expression) *Comparison {
	return &Comparison{Left: left, Operator: op, Right: right}
}

// Eq, Neq, Gt, Gte, Lt, Lte are convenience constructors for the common
// comparison operators.
func Eq(left, right Expression) *Comparison { return Cmp(left, "=", right) }
func Neq(left, right Expression) *Comparison { return Cmp(left, "!=", right) }
func Gt(left, right Expression) *Comparison { return Cmp(left, ">", right) }
func Gte(left, right Expression) *Comparison { return Cmp(left, ">=", right) }
func Lt(left, right Expression) *Comparison { return Cmp(left, "<", right) }
func Lte(left, right Expression) *Comparison { return Cmp(left, "<=", right) }

// Between renders "column between from and to".
type Between struct {
	Column Expression
	From   Expression
	To     Expression
}

func (*Between) Returns() bool { return true }

// Betw builds a Between expression.
func Betw(column, from, to Expression) *Between {
	return &Between{Column: column, From: from, To: to}
}

// Not renders "not (inner)"; parenthesization of inner is forced.
type Not struct {
	Inner Expression
}

func (*Not) Returns() bool { return true }

// Negate wraps inner in a Not.
func Negate(inner Expression) *Not { return &Not{Inner: inner} }

// IfThen is one WHEN/THEN arm of a CaseWhen. It is itself an Expression
// so it can be reduced directly to a single-arm CaseWhen.
type IfThen struct {
	Condition Expression
	Then      Expression
}

func (*IfThen) Returns() bool { return true }

// When builds an IfThen arm.
func When(condition, then Expression) *IfThen {
	return &IfThen{Condition: condition, Then: then}
}

// CaseWhen is a searched CASE expression. With no arms it degenerates to
// its Else expression (or NULL if Else is also nil).
type CaseWhen struct {
	Arms []*IfThen
	Else Expression
}

func (*CaseWhen) Returns() bool { return true }

// Case builds a CaseWhen from the given WHEN/THEN arms, with an optional
// trailing ELSE set via CaseWhen.WithElse.
func Case(arms ...*IfThen) *CaseWhen { return &CaseWhen{Arms: arms} }

// WithElse attaches an ELSE expression and returns the same CaseWhen for
// chaining.
func (c *CaseWhen) WithElse(e Expression) *CaseWhen {
	c.Else = e
	return c
}

// Concat renders its arguments joined by the dialect's string
// concatenation operator (standard SQL "||" by default).
type Concat struct {
	Args []Expression
}

func (*Concat) Returns() bool { return true }

// ConcatOf builds a Concat expression.
func ConcatOf(args ...Expression) *Concat { return &Concat{Args: args} }

// Cast renders "cast(inner as type)".
type Cast struct {
	Inner Expression
	Type  string
}

func (*Cast) Returns() bool { return true }

// CastTo wraps inner in a Cast to the given SQL type.
func CastTo(inner Expression, typ string) *Cast { return &Cast{Inner: inner, Type: typ} }
