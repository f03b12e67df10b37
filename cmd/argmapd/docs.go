package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           argmap API
// @version         1.0
// @description     Control surface for the argmap model registry.
//
// @contact.name   argmap maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
