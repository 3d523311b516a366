// Command shifttrack is the command-line client for the shift tracker.
//
// It records shifts and wage rates, renders earnings reports and the
// activity heatmap, and audits paystub documents against recorded hours.
package main
