/*
payday.go - Payday estimation

PURPOSE:
  Each quincena is paid a fixed number of business days after its cutoff
  (the 15th, or the last day of the month). The estimator walks forward
  from the cutoff, counting Monday-Friday only; weekend days are skipped
  without advancing the count.

  A Friday cutoff therefore lands on the following Thursday: Saturday
  and Sunday are skipped, Monday through Thursday count as days 1-4.

SEE ALSO:
  - totals.go: Attaches cutoffs and estimated paydays to quincenas
*/
package schedule

// DefaultPaydayLag is the number of business days between a quincena
// cutoff and its estimated payday.
const DefaultPaydayLag = 4

// PaydayAfter returns the date of the nth business day after the cutoff.
// A non-positive n returns the cutoff itself.
func PaydayAfter(cutoff Date, businessDays int) Date {
	d := cutoff
	for counted := 0; counted < businessDays; {
		d = d.AddDays(1)
		if d.IsBusinessDay() {
			counted++
		}
	}
	return d
}
