package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/ofertas-pro/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Donas La 70", "donas-la-70"},
		{"Panadería El Trigal", "panaderia-el-trigal"},
		{"Ñoquis & Pasta", "noquis-pasta"},
		{"  espacios   extra  ", "espacios-extra"},
		{"CAFÉ---DOBLE", "cafe-doble"},
		{"2x1", "2x1"},
		{"", ""},
		{"¡¿?!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Make(tc.in), "slug de %q", tc.in)
	}
}
