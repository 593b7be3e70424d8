package pgschema_test

import (
	"context"
	"fmt"
	"log"

	pgschema "github.com/schemadrift/schemadrift"
)

// ExampleClient_Dump demonstrates how to dump a database schema as a SQL string.
func ExampleClient_Dump() {
	ctx := context.Background()

	dbConfig := pgschema.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "myapp",
		User:     "postgres",
		Password: "password",
		Schema:   "public",
	}

	ddl, err := pgschema.NewClient(dbConfig).Dump(ctx, pgschema.DumpOptions{})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("Schema dump:")
	fmt.Println(ddl)
}

// ExampleClient_Plan demonstrates how to generate a migration plan against
// a sql: source.
func ExampleClient_Plan() {
	ctx := context.Background()

	dbConfig := pgschema.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "myapp",
		User:     "postgres",
		Password: "password",
		Schema:   "public",
	}

	client := pgschema.NewClient(dbConfig)
	result, err := client.Plan(ctx, pgschema.PlanOptions{
		Sources: []string{"sql:./schema/*.sql"},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d operation(s) planned\n", len(result.Ops))
	fmt.Println(result.DDL)
}

// ExampleClient_Apply demonstrates planning and applying sources against a
// live database in one call.
func ExampleClient_Apply() {
	ctx := context.Background()

	dbConfig := pgschema.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "myapp",
		User:     "postgres",
		Password: "password",
		Schema:   "public",
	}

	result, err := pgschema.NewClient(dbConfig).Apply(ctx, pgschema.ApplyOptions{
		Sources: []string{"sql:./schema/*.sql"},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("applied %d statement(s)\n", result.StatementsExecuted)
}

// ExampleClient_Drift demonstrates checking whether a live database has
// drifted from its declared sources.
func ExampleClient_Drift() {
	ctx := context.Background()

	dbConfig := pgschema.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		Database: "myapp",
		User:     "postgres",
		Password: "password",
		Schema:   "public",
	}

	drift, err := pgschema.NewClient(dbConfig).Drift(ctx, []string{"sql:./schema/*.sql"})
	if err != nil {
		log.Fatal(err)
	}

	if drift.HasDrift {
		fmt.Printf("drift detected: %d operation(s) would reconcile it\n", len(drift.Ops))
	} else {
		fmt.Println("no drift detected")
	}
}

// ExampleClient_DiffSources demonstrates comparing two source specs directly,
// without touching a live database.
func ExampleClient_DiffSources() {
	ctx := context.Background()

	var client pgschema.Client
	result, err := client.DiffSources(ctx, pgschema.DiffSourcesOptions{
		From: []string{"sql:./old_schema/*.sql"},
		To:   []string{"sql:./new_schema/*.sql"},
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d operation(s) would transform old into new\n", len(result.Ops))
}
