package functions

import (
	"github.com/lyraproj/issue/issue"
	"github.com/rill-lang/rill/rill"
	"github.com/rill-lang/rill/yaml"
)

func init() {
	rill.AddBuiltin(`parseyaml`, 1, 1,
		func(c rill.Context, args []rill.Value) rill.Value {
			v, err := yaml.Unmarshal([]byte(stringArg(`parseyaml`, `document`, args[0])))
			if err != nil {
				panic(rill.ErrorAt(c, rill.DataParse, issue.H{
					`language`: `YAML`, `detail`: err.Error()}))
			}
			return v
		})
}
