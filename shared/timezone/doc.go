// Package timezone keeps the wall clock of the business. Revenue periods,
// overdue flags and formatted dates are all computed in the configured
// APP_TIMEZONE (an IANA name such as "America/Sao_Paulo"), not in the server's
// local zone. Weeks start on Sunday.
package timezone
