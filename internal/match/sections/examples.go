package sections

import (
	"hash/fnv"
	"math/rand"
)

// ExampleSelector picks one template sentence for a keyword. Implementations
// must be safe for concurrent use and should not depend on earlier calls.
type ExampleSelector interface {
	Select(keyword string, templates []string) string
}

type firstTemplate struct{}

func (firstTemplate) Select(_ string, templates []string) string {
	if len(templates) == 0 {
		return ""
	}
	return templates[0]
}

// FirstTemplate always picks the first template, so output is reproducible.
func FirstTemplate() ExampleSelector { return firstTemplate{} }

type seededTemplates struct {
	seed int64
}

// SeededTemplates picks templates pseudo-randomly from a fixed seed. The
// choice depends only on the seed and the keyword, so it is the same for
// every request and every process.
func SeededTemplates(seed int64) ExampleSelector {
	return seededTemplates{seed: seed}
}

func (s seededTemplates) Select(keyword string, templates []string) string {
	if len(templates) == 0 {
		return ""
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(keyword))
	rng := rand.New(rand.NewSource(s.seed ^ int64(h.Sum64())))
	return templates[rng.Intn(len(templates))]
}

// KeywordTemplates returns the example sentences for keyword, or nil.
func KeywordTemplates(keyword string) []string {
	t := keywordTemplates[keyword]
	if t == nil {
		return nil
	}
	return append([]string(nil), t...)
}

func keywordExamples(keywords []string, sel ExampleSelector) []KeywordExample {
	var out []KeywordExample
	for _, kw := range keywords {
		templates, ok := keywordTemplates[kw]
		if !ok {
			continue
		}
		out = append(out, KeywordExample{Keyword: kw, Example: sel.Select(kw, templates)})
	}
	return out
}

var keywordTemplates = map[string][]string{
	"leadership": {
		"Demonstrated **leadership** by mentoring a team of 5 junior developers, improving code quality by 40%",
		"Provided technical **leadership** in architecting scalable solutions for enterprise clients",
		"Exercised **leadership** in driving cross-functional initiatives that reduced deployment time by 60%",
	},
	"management": {
		"Project **management** of end-to-end development lifecycle for 3+ concurrent applications",
		"Resource **management** and task allocation across distributed teams to meet tight deadlines",
		"**Managed** stakeholder relationships and gathered requirements for critical business systems",
	},
	"team": {
		"Collaborated with cross-functional **teams** including designers, PMs, and QA engineers",
		"Led **team** code reviews and established best practices for version control",
		"Worked within an agile **team** environment to deliver features in 2-week sprints",
	},
	"project": {
		"Delivered 10+ **projects** on time and under budget, serving 100K+ users",
		"Spearheaded **project** to migrate legacy systems to modern cloud infrastructure",
		"**Project** contributions resulted in 35% improvement in application performance",
	},
	"strategic": {
		"Contributed to **strategic** planning for technology roadmap and architecture decisions",
		"Made **strategic** technical choices that reduced infrastructure costs by 25%",
		"Developed **strategic** partnerships with vendors to enhance product capabilities",
	},
	"analysis": {
		"Conducted technical **analysis** of system bottlenecks and implemented optimization strategies",
		"Performed data **analysis** to identify user behavior patterns and improve UX",
		"**Analyzed** business requirements and translated them into technical specifications",
	},
	"development": {
		"Full-stack **development** using React, Node.js, and PostgreSQL for e-commerce platform",
		"Led **development** efforts for mobile-responsive web applications",
		"Drove **development** of RESTful APIs serving 1M+ requests daily",
	},
	"communication": {
		"Strong **communication** with stakeholders to align technical solutions with business goals",
		"Effective **communication** of complex technical concepts to non-technical audiences",
		"Regular **communication** through documentation, presentations, and team meetings",
	},
	"collaboration": {
		"**Collaboration** with product teams to define features and prioritize backlog items",
		"Fostered **collaboration** between frontend and backend teams for seamless integration",
		"**Collaborated** with DevOps to implement CI/CD pipelines and automated testing",
	},
	"innovation": {
		"Drove **innovation** by introducing modern frameworks that improved development velocity",
		"**Innovative** problem-solving approach reduced critical bug resolution time by 50%",
		"Championed **innovation** through hackathons and proof-of-concept projects",
	},
	"agile": {
		"**Agile** development methodology with daily standups, sprint planning, and retrospectives",
		"Participated in **agile** ceremonies and contributed to continuous improvement initiatives",
		"**Agile** approach to iterative development and rapid feature deployment",
	},
	"scrum": {
		"Active participant in **Scrum** framework including sprint planning and backlog refinement",
		"**Scrum** team member contributing to sprint goals and velocity improvements",
		"Followed **Scrum** best practices for transparent and efficient project delivery",
	},
	"data": {
		"**Data**-driven decision making through analytics, monitoring, and A/B testing",
		"Worked with large **data** sets using SQL, ETL processes, and data visualization tools",
		"**Data** pipeline development for real-time analytics and reporting",
	},
	"research": {
		"**Research** and evaluation of emerging technologies to enhance product offerings",
		"Conducted **research** on industry best practices and competitive analysis",
		"**Research** initiatives led to adoption of new tools improving team productivity",
	},
	"optimization": {
		"Performance **optimization** resulting in 3x faster page load times",
		"Database **optimization** and query tuning for improved application responsiveness",
		"**Optimized** algorithms reducing computational complexity from O(n²) to O(n log n)",
	},
	"performance": {
		"Enhanced application **performance** through code refactoring and caching strategies",
		"Monitored **performance** metrics and implemented improvements based on analytics",
		"**Performance** tuning of backend services handling high-volume traffic",
	},
	"quality": {
		"Ensured code **quality** through comprehensive unit testing and code reviews",
		"Improved **quality** assurance processes with automated testing frameworks",
		"**Quality**-focused development with test coverage above 85%",
	},
	"testing": {
		"Wrote unit and integration **testing** suites that caught regressions before every release",
		"Introduced contract **testing** between services, cutting integration defects by 30%",
		"Automated end-to-end **testing** in the CI pipeline for all customer-facing flows",
	},
	"deployment": {
		"Owned zero-downtime **deployment** of services to production using blue-green releases",
		"Cut **deployment** time from 2 hours to 10 minutes by scripting release steps",
		"Managed container **deployment** across staging and production clusters",
	},
	"api": {
		"Designed a versioned REST **API** consumed by web and mobile clients",
		"Built internal **API** endpoints with request validation and rate limiting",
		"Documented the public **API** with OpenAPI specs and example requests",
	},
	"database": {
		"Modeled the **database** schema and wrote migrations for a multi-tenant product",
		"Tuned **database** indexes and queries, reducing p95 latency by 45%",
		"Ran **database** backups and restore drills for production data",
	},
	"cloud": {
		"Migrated on-premise workloads to the **cloud**, lowering hosting costs by 20%",
		"Provisioned **cloud** infrastructure as code for repeatable environments",
		"Operated **cloud** services with autoscaling and cost alerts",
	},
	"security": {
		"Hardened application **security** by fixing OWASP Top 10 findings",
		"Added **security** reviews and dependency scanning to the release process",
		"Implemented secrets management to raise platform **security** posture",
	},
	"documentation": {
		"Wrote technical **documentation** and runbooks used by on-call engineers",
		"Maintained onboarding **documentation** that halved ramp-up time for new hires",
		"Kept architecture **documentation** current alongside code changes",
	},
	"debugging": {
		"Led **debugging** of production incidents and wrote blameless postmortems",
		"Used profiling and tracing for **debugging** memory leaks in long-running services",
		"Reduced open defect count by 60% through focused **debugging** sprints",
	},
	"architecture": {
		"Defined service **architecture** for a platform handling 5M events per day",
		"Proposed an event-driven **architecture** that decoupled billing from orders",
		"Reviewed **architecture** decisions and recorded them as ADRs",
	},
	"scalable": {
		"Built **scalable** services that grew from 1K to 1M daily users without rewrites",
		"Designed **scalable** job queues that absorbed 10x traffic spikes",
		"Delivered a **scalable** caching layer that offloaded 70% of reads",
	},
}
