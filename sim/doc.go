// Package sim provides the discrete-event simulation engine for the clinic.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: the two event variants (arrival, departure) and what they do
//   - event_queue.go: time-ordered future event list with FIFO tie-break
//   - simulator.go: the event loop, doctor assignment and service start
//
// # Flow of a run
//
// Run resets all state, asks the ArrivalGenerator for one arrival time per
// patient record (up to the horizon), and schedules them. The loop then pops
// events in (time, insertion) order. An arrival is classified by the
// clinic package, matched against the DoctorPool (first free specialist,
// else first free general doctor) or parked in its SpecialtyQueues FIFO. A
// departure frees its doctor, which immediately pulls the next waiting
// patient. Once the queue drains, the sampler replays the recorded
// timestamps minute by minute and the statistics are reduced into a Result.
//
// # Sub-packages
//   - sim/clinic/: specialty vocabulary and condition classifier
//   - sim/stats/: mean, variance and percentile reductions
package sim
