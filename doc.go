// Package paprika adds synthesized structural behavior to plain Go structs and
// counts reads and writes made through function arguments.
//
// # Data Types
//
// Augment a struct once, then construct, compare, hash and render it:
//
//	type Person struct {
//	    Age  int    `paprika:"age,required"`
//	    Name string `paprika:"name"`
//	}
//
//	people := paprika.MustData[Person]()
//
//	p, err := people.New(19, "Rayan")                         // positional
//	p, err  = people.NewKw(map[string]any{"name": "Rayan"}, 19) // named after positional
//
//	people.Equal(a, b)  // every field deeply equal
//	people.Hash(a)      // consistent with Equal
//	people.String(a)    // Person@[age=19, name=Rayan]
//	people.Diff(a, b)   // human readable difference
//
// Binding nil to a required field fails with a REQUIRED_FIELD_VIOLATION
// error. Named arguments that match no field are ignored.
//
// # Descriptor Tables
//
// Struct tags can be replaced with an explicit table:
//
//	people := paprika.MustData[Person](
//	    paprika.WithFields(paprika.Required("Age"), paprika.Field("Name")),
//	)
//
// # Singletons
//
// A Singleton builds its instance on the first Get and returns the same
// pointer afterwards, ignoring later arguments:
//
//	config := paprika.MustSingleton[Config]()
//	first, _ := config.Get("prod")
//	again, _ := config.Get()  // first == again
//
// Types whose pointer implements Initializer construct themselves; all
// others use the synthesized constructor.
//
// # Persistence
//
// Save and load instances with Go's native gob encoding in a versioned frame:
//
//	store := paprika.MustPickled[Person](paprika.WithProtocol(paprika.ProtocolGzip))
//	err := store.Save(p, "person.pkl")
//	loaded, err := store.Load("person.pkl")
//
// Foreign, truncated or mismatched files fail with SERIALIZATION_FAILURE.
//
// # Access Counting
//
// Instrument a function to count reads and writes on each positional
// argument:
//
//	f := paprika.AccessCounter(
//	    "f", []string{"seq", "table"},
//	    func(c *paprika.Call) (struct{}, error) {
//	        v, err := c.Arg(1).Get("key")
//	        if err != nil {
//	            return struct{}{}, err
//	        }
//	        return struct{}{}, c.Arg(0).Set(0, v)
//	    },
//	)
//	f.Call([]int{1, 2}, map[string]int{"key": 7})
//
// Each call prints a table to stdout:
//
//	data access summary for function: f
//	+----------+--------+---------+
//	| Arg Name | nReads | nWrites |
//	+==========+========+=========+
//	| seq      |      0 |       1 |
//	+----------+--------+---------+
//	| table    |      1 |       0 |
//	+----------+--------+---------+
//
// Use WithReportHandler to receive the counters programmatically,
// WithReportFormat(ReportYAML) for YAML output and WithRegistry to isolate
// counters from the process-wide registry. Named arguments passed with
// CallKw are never proxied.
package paprika
