package main

// General API documentation for swaggo. Regenerate with `swag init` before
// building with -tags=swagger.
//
// @title           agentd API
// @version         1.0
// @description     HTTP API for the job-application pipeline and model-backend lifecycle.
//
// @contact.name   agentd maintainers
// @contact.url    https://github.com/Nitanshu99/job-application-agent-sub000
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
