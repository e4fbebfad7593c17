// Package commands defines the ecoscene operator CLI.
//
// Commands
//
//   - quote     Replay a TOML session of cart actions and print the priced cart
//   - catalog   List the fixture catalog through the marketplace filter
//   - stress    Fire concurrent gRPC quotes and check every answer is identical
package commands
