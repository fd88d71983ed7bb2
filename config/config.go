package config

import "time"

// Party and showroom

var GuestCount = 10
var LeaderId = 1

// Party harness

var Workers = 4
var Sampling = "random"
var RequestTimeout = 5 * time.Second
