/*
Package config manages configuration parsing and validation for metadate.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Manages configuration loading and parsing
- Validates configuration values
- Provides type-safe config access
- Supports multiple config formats

🔄 Flow:
1. Reads configuration from file (defaults apply when absent)
2. Parses format-specific syntax
3. Validates configuration values
4. Provides validated config to other packages

⚡ Key Responsibilities:
- Filename format (Go time layout) selection
- Media extension lists for images and videos
- Ignore glob patterns
- Conflict policy and rename parallelism
- Log file location

📝 Design Philosophy:
The config package is the source of truth for all configuration. It:
- Provides a clean interface for config access
- Ensures type safety and validation
- Abstracts away format-specific details
- Makes configuration errors clear and actionable
*/
package config
