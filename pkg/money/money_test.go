package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAmount(t *testing.T) {
	Convey("Given amounts built from floats", t, func() {
		Convey("They are rounded to cents", func() {
			So(FromFloat(1.005).Decimal().String(), ShouldEqual, "1.01")
			So(FromFloat(250_000).Decimal().Equal(decimal.NewFromInt(250_000)), ShouldBeTrue)
		})

		Convey("Scaling stays exact in decimal", func() {
			a := FromFloat(500_000)
			So(a.DivFloat(2).Equal(FromFloat(250_000)), ShouldBeTrue)
			So(a.MulFloat(5).Equal(FromFloat(2_500_000)), ShouldBeTrue)
			So(a.Percent(10).Equal(FromFloat(50_000)), ShouldBeTrue)
		})

		Convey("Comparison orders by value", func() {
			So(FromFloat(1).Cmp(FromFloat(2)), ShouldEqual, -1)
			So(FromFloat(2).Cmp(FromFloat(2)), ShouldEqual, 0)
			So(Zero().Cmp(FromFloat(-1)), ShouldEqual, 1)
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given display formats", t, func() {
		So(Millions(FromFloat(115_400_000)), ShouldEqual, "$115M")
		So(Millions(FromFloat(4_600_000)), ShouldEqual, "$5M")
		So(Full(FromFloat(1_234_567.4)), ShouldEqual, "$1,234,567")
		So(Full(FromFloat(-2_500)), ShouldEqual, "-$2,500")
		So(FromFloat(999).String(), ShouldEqual, "$999")
		So(Pct(0.424), ShouldEqual, "42%")
		So(Pct(0.9), ShouldEqual, "90%")
	})
}

func TestJSON(t *testing.T) {
	Convey("Given an amount in a JSON document", t, func() {
		b, err := json.Marshal(map[string]Amount{"v": FromFloat(12.5)})
		So(err, ShouldBeNil)
		So(string(b), ShouldEqual, `{"v":12.50}`)

		var out map[string]Amount
		So(json.Unmarshal(b, &out), ShouldBeNil)
		So(out["v"].Equal(FromFloat(12.5)), ShouldBeTrue)
	})
}
