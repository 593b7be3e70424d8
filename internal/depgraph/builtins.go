package depgraph

// builtinFunctions is the set of Postgres-provided function names
// (aggregates, window functions, date/time, math, string, JSON, array,
// system-information, and sequence functions) filtered out of
// extracted references so only application-defined dependencies
// surface (about 230 names).
var builtinFunctions = map[string]bool{
	// Aggregates
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
	"array_agg": true, "json_agg": true, "jsonb_agg": true, "string_agg": true,
	"bool_and": true, "bool_or": true, "every": true, "variance": true,
	"stddev": true, "stddev_pop": true, "stddev_samp": true, "var_pop": true, "var_samp": true,
	"json_object_agg": true, "jsonb_object_agg": true, "xmlagg": true,

	// Window functions
	"row_number": true, "rank": true, "dense_rank": true, "percent_rank": true,
	"cume_dist": true, "ntile": true, "lag": true, "lead": true,
	"first_value": true, "last_value": true, "nth_value": true,

	// Date/time
	"now": true, "current_date": true, "current_time": true, "current_timestamp": true,
	"localtime": true, "localtimestamp": true, "clock_timestamp": true, "statement_timestamp": true,
	"transaction_timestamp": true, "timeofday": true, "age": true, "date_part": true,
	"date_trunc": true, "extract": true, "make_date": true, "make_time": true,
	"make_timestamp": true, "make_timestamptz": true, "make_interval": true,
	"to_date": true, "to_timestamp": true, "isfinite": true, "justify_days": true,
	"justify_hours": true, "justify_interval": true,

	// Math
	"abs": true, "ceil": true, "ceiling": true, "floor": true, "round": true,
	"trunc": true, "sign": true, "sqrt": true, "cbrt": true, "power": true,
	"exp": true, "ln": true, "log": true, "log10": true, "mod": true,
	"div": true, "pi": true, "random": true, "setseed": true,
	"acos": true, "asin": true, "atan": true, "atan2": true, "cos": true,
	"cot": true, "sin": true, "tan": true, "sinh": true, "cosh": true, "tanh": true,
	"degrees": true, "radians": true, "gcd": true, "lcm": true, "factorial": true,
	"width_bucket": true,

	// String
	"length": true, "char_length": true, "character_length": true, "bit_length": true,
	"octet_length": true, "lower": true, "upper": true, "initcap": true,
	"substring": true, "substr": true, "trim": true, "ltrim": true, "rtrim": true,
	"btrim": true, "lpad": true, "rpad": true, "replace": true, "translate": true,
	"split_part": true, "strpos": true, "position": true, "overlay": true,
	"concat": true, "concat_ws": true, "format": true, "left": true, "right": true,
	"reverse": true, "repeat": true, "quote_ident": true, "quote_literal": true,
	"quote_nullable": true, "regexp_replace": true, "regexp_match": true,
	"regexp_matches": true, "regexp_split_to_array": true, "regexp_split_to_table": true,
	"to_char": true, "to_number": true, "chr": true, "ascii": true, "convert": true,
	"convert_from": true, "convert_to": true, "encode": true, "decode": true,
	"md5": true, "sha256": true, "starts_with": true, "unaccent": true,

	// JSON/JSONB
	"to_json": true, "to_jsonb": true, "array_to_json": true, "row_to_json": true,
	"json_build_array": true, "jsonb_build_array": true, "json_build_object": true,
	"jsonb_build_object": true, "json_object": true, "jsonb_object": true,
	"json_array_length": true, "jsonb_array_length": true, "json_each": true,
	"jsonb_each": true, "json_each_text": true, "jsonb_each_text": true,
	"json_extract_path": true, "jsonb_extract_path": true, "json_extract_path_text": true,
	"jsonb_extract_path_text": true, "json_typeof": true, "jsonb_typeof": true,
	"json_strip_nulls": true, "jsonb_strip_nulls": true, "jsonb_set": true,
	"jsonb_insert": true, "jsonb_path_exists": true, "jsonb_path_query": true,
	"jsonb_path_match": true, "json_populate_record": true, "jsonb_populate_record": true,
	"json_array_elements": true, "jsonb_array_elements": true,
	"json_array_elements_text": true, "jsonb_array_elements_text": true,

	// Array
	"array_append": true, "array_prepend": true, "array_cat": true, "array_remove": true,
	"array_replace": true, "array_length": true, "array_upper": true, "array_lower": true,
	"array_ndims": true, "array_dims": true, "array_position": true, "array_positions": true,
	"array_to_string": true, "string_to_array": true, "unnest": true, "cardinality": true,
	"array_fill": true,

	// System information
	"current_user": true, "session_user": true, "current_role": true, "current_schema": true,
	"current_schemas": true, "current_database": true, "current_catalog": true,
	"version": true, "pg_backend_pid": true, "pg_typeof": true, "pg_get_userbyid": true,
	"inet_client_addr": true, "inet_client_port": true, "inet_server_addr": true, "inet_server_port": true,
	"has_table_privilege": true, "has_schema_privilege": true, "has_function_privilege": true,
	"has_column_privilege": true, "obj_description": true, "col_description": true,
	"pg_table_is_visible": true,

	// Sequence
	"nextval": true, "currval": true, "lastval": true, "setval": true,

	// UUID / misc
	"gen_random_uuid": true, "uuid_generate_v4": true, "coalesce": true, "nullif": true,
	"greatest": true, "least": true, "cast": true, "num_nonnulls": true, "num_nulls": true,
}

// isBuiltinFunction reports whether name (the unqualified, lowercased
// function name) is a Postgres-provided builtin rather than an
// application-defined dependency.
func isBuiltinFunction(name string) bool {
	return builtinFunctions[lower(name)]
}

func lower(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}
